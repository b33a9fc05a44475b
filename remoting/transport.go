package remoting

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Transport is the low-level remoting channel to one engine instance.
//
// Contract:
// - Concurrency: implementations need not be safe for concurrent use;
//   the Session serializes all access.
// - Context: methods must honor cancellation and deadlines.
// - Errors: faults are returned as errors; classification via errors.Is
//   against the package sentinels where applicable.
type Transport interface {
	// Connect establishes the channel to host:port and performs the
	// protocol handshake.
	Connect(ctx context.Context, host, port string) error

	// Ping issues one liveness probe on the established channel.
	Ping(ctx context.Context) error

	// Dispatch sends one action string and waits for the engine's
	// accept/reject acknowledgement. Acceptance does not imply the
	// action succeeded inside the engine.
	Dispatch(ctx context.Context, command string) error

	// Close releases the channel. Safe to call when not connected.
	Close() error
}

// Wire protocol verbs exchanged with the engine's remoting listener.
// Requests and replies are single CRLF-terminated lines.
const (
	wireHello = "HELLO"
	wirePing  = "PING"
	wirePong  = "PONG"
	wireExec  = "EXEC"
	wireOK    = "OK"
	wireErr   = "ERR"
)

const maxReplyLine = 64 * 1024

// TCPTransport speaks the engine's line-oriented remoting protocol over a
// plain TCP connection. The zero value is usable.
type TCPTransport struct {
	mu   sync.Mutex
	conn net.Conn
	rd   *bufio.Reader
}

// NewTCPTransport returns a TCP transport ready to connect.
func NewTCPTransport() *TCPTransport {
	return &TCPTransport{}
}

// Connect dials host:port and exchanges the hello handshake.
func (t *TCPTransport) Connect(ctx context.Context, host, port string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		t.closeLocked()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return err
	}

	t.conn = conn
	t.rd = bufio.NewReaderSize(conn, maxReplyLine)

	reply, err := t.roundTrip(ctx, wireHello+" eplanremote")
	if err != nil {
		t.closeLocked()
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}
	if !strings.HasPrefix(reply, wireOK) {
		t.closeLocked()
		return fmt.Errorf("%w: unexpected reply %q", ErrHandshakeFailed, reply)
	}
	return nil
}

// Ping sends a liveness probe and expects PONG.
func (t *TCPTransport) Ping(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return ErrNotConnected
	}
	reply, err := t.roundTrip(ctx, wirePing)
	if err != nil {
		return err
	}
	if reply != wirePong {
		return fmt.Errorf("unexpected ping reply %q", reply)
	}
	return nil
}

// Dispatch sends one action string and waits for OK or ERR.
func (t *TCPTransport) Dispatch(ctx context.Context, command string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return ErrNotConnected
	}
	reply, err := t.roundTrip(ctx, wireExec+" "+command)
	if err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(reply, wireOK):
		return nil
	case strings.HasPrefix(reply, wireErr):
		return fmt.Errorf("%w: %s", ErrDispatchRejected, strings.TrimSpace(strings.TrimPrefix(reply, wireErr)))
	default:
		return fmt.Errorf("%w: unexpected reply %q", ErrDispatchRejected, reply)
	}
}

// Close releases the connection. Idempotent.
func (t *TCPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closeLocked()
}

func (t *TCPTransport) closeLocked() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.rd = nil
	return err
}

// roundTrip writes one request line and reads one reply line, applying the
// context deadline to both directions. Callers hold t.mu.
func (t *TCPTransport) roundTrip(ctx context.Context, line string) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return "", err
	}
	if _, err := t.conn.Write([]byte(line + "\r\n")); err != nil {
		return "", err
	}
	reply, err := t.rd.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(reply, "\r\n"), nil
}
