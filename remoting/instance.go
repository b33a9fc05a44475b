package remoting

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"
)

// Instance describes one running engine instance found on the local machine.
type Instance struct {
	// Version is the engine version the instance reported (e.g. "2026.0").
	Version string `json:"version"`

	// Variant is the product variant (e.g. "Electric P8"). May be empty
	// when the instance's probe reply does not carry one.
	Variant string `json:"variant"`

	// Port is the remoting port the instance listens on.
	Port string `json:"port"`
}

// Discoverer finds running engine instances on the local machine.
//
// Contract:
// - Context: Discover must honor cancellation and deadlines.
// - Errors: returning an empty list with a nil error is the normal
//   "nothing running" outcome; errors are reserved for a broken probe.
type Discoverer interface {
	Discover(ctx context.Context) ([]Instance, error)
}

// Discovery defaults. The engine binds the first free port of the dynamic
// range starting at the well-known base, one port per instance, so a small
// contiguous window covers every realistic setup.
const (
	discoveryBasePort    = 49152
	discoveryWindow      = 16
	discoveryDialTimeout = 250 * time.Millisecond
)

// PortProbe discovers instances by probing the engine's port window with
// the hello handshake. Instances answer with their version and variant.
type PortProbe struct {
	// Host to probe. Default "localhost".
	Host string

	// BasePort is the first port of the window. Default 49152.
	BasePort int

	// Window is the number of consecutive ports probed. Default 16.
	Window int

	// DialTimeout bounds each per-port connection attempt. Default 250ms.
	DialTimeout time.Duration
}

// Discover probes the port window in ascending order and returns one
// Instance per answering port. Ports that refuse or time out are skipped.
func (p *PortProbe) Discover(ctx context.Context) ([]Instance, error) {
	host := p.Host
	if host == "" {
		host = DefaultHost
	}
	base := p.BasePort
	if base == 0 {
		base = discoveryBasePort
	}
	window := p.Window
	if window == 0 {
		window = discoveryWindow
	}
	dialTimeout := p.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = discoveryDialTimeout
	}

	var found []Instance
	for i := 0; i < window; i++ {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		port := strconv.Itoa(base + i)
		inst, ok := probePort(ctx, host, port, dialTimeout)
		if ok {
			found = append(found, inst)
		}
	}
	return found, nil
}

// probePort dials one port and runs the hello exchange. A reply of the form
// "OK <version> <variant...>" identifies an engine instance.
func probePort(ctx context.Context, host, port string, timeout time.Duration) (Instance, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(probeCtx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return Instance{}, false
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := conn.Write([]byte(wireHello + " eplanremote\r\n")); err != nil {
		return Instance{}, false
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return Instance{}, false
	}

	fields := strings.Fields(strings.TrimRight(reply, "\r\n"))
	if len(fields) == 0 || fields[0] != wireOK {
		return Instance{}, false
	}
	inst := Instance{Port: port}
	if len(fields) > 1 {
		inst.Version = fields[1]
	}
	if len(fields) > 2 {
		inst.Variant = strings.Join(fields[2:], " ")
	}
	return inst, true
}
