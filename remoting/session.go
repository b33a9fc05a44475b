package remoting

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Default session configuration values.
const (
	DefaultHost           = "localhost"
	DefaultPort           = "49152"
	DefaultConnectTimeout = 10 * time.Second
)

// State is the session connection state.
type State int

// Session states.
const (
	Disconnected State = iota
	Connecting
	Connected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config configures a Session. The zero value is usable and wires the
// default TCP transport and port-probe discovery.
type Config struct {
	// Host is the default engine host. Default "localhost".
	Host string

	// ConnectTimeout bounds the handshake and the post-handshake probe.
	// Default 10s.
	ConnectTimeout time.Duration

	// Transport is the wire channel. Default: NewTCPTransport().
	Transport Transport

	// Discoverer finds running instances for port auto-detection.
	// Default: &PortProbe{Host: Host}.
	Discoverer Discoverer

	// Logger is an optional logger for session events.
	Logger Logger
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Transport == nil {
		c.Transport = NewTCPTransport()
	}
	if c.Discoverer == nil {
		c.Discoverer = &PortProbe{Host: c.Host}
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
}

// Session owns the single logical connection to one engine instance.
// All methods are safe for concurrent use; action dispatch is serialized
// because the engine's remoting channel is stateful and ordering-sensitive.
type Session struct {
	cfg Config

	mu      sync.Mutex
	state   State
	port    string
	lastErr string
}

// NewSession creates a session in the Disconnected state.
func NewSession(cfg Config) *Session {
	cfg.applyDefaults()
	return &Session{cfg: cfg}
}

// Discover returns the running engine instances on the local machine.
// It never fails: a broken probe is recorded as the session's last error
// and an empty list is returned.
func (s *Session) Discover(ctx context.Context) []Instance {
	instances, err := s.cfg.Discoverer.Discover(ctx)
	if err != nil {
		msg := fmt.Sprintf("discovery failed: %v", err)
		s.cfg.Logger.Error("discovery failed", "error", err)
		s.mu.Lock()
		s.lastErr = msg
		s.mu.Unlock()
		return nil
	}
	for _, inst := range instances {
		s.cfg.Logger.Info("found instance", "version", inst.Version, "port", inst.Port)
	}
	return instances
}

// Connect establishes the session. An empty host falls back to the
// configured default; an empty port is auto-detected by picking the
// last-discovered instance (the most recently started one), falling back
// to the well-known default port when nothing is running.
//
// The session reaches Connected only after both the handshake and one
// liveness probe succeed.
func (s *Session) Connect(ctx context.Context, host, port string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if host == "" {
		host = s.cfg.Host
	}
	if port == "" {
		// Last-discovered instance is the most recently started one.
		instances, err := s.cfg.Discoverer.Discover(ctx)
		if err != nil {
			s.lastErr = fmt.Sprintf("discovery failed: %v", err)
			s.cfg.Logger.Error("discovery failed", "error", err)
		}
		if len(instances) > 0 {
			port = instances[len(instances)-1].Port
			s.cfg.Logger.Info("auto-detected port", "port", port)
		} else {
			port = DefaultPort
		}
	}

	s.state = Connecting
	s.port = port
	s.cfg.Logger.Info("connecting", "host", host, "port", port)

	connectCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	if err := s.cfg.Transport.Connect(connectCtx, host, port); err != nil {
		s.state = Disconnected
		msg := fmt.Sprintf("Connection failed: %v", err)
		s.lastErr = msg
		s.cfg.Logger.Error("connect failed", "host", host, "port", port, "error", err)
		return Result{Success: false, Message: msg}
	}

	if err := s.cfg.Transport.Ping(connectCtx); err != nil {
		s.state = Disconnected
		_ = s.cfg.Transport.Close()
		msg := fmt.Sprintf("Connected but ping failed: %v", err)
		s.lastErr = msg
		s.cfg.Logger.Error("post-connect probe failed", "error", err)
		return Result{Success: false, Message: msg}
	}

	s.state = Connected
	s.cfg.Logger.Info("connected", "host", host, "port", port)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Connected to EPLAN at %s:%s", host, port),
		Port:    port,
	}
}

// Ping probes the engine. A transport fault during the probe demotes the
// session to Disconnected, so a silently dropped connection heals on the
// next Connect instead of wedging every later call.
func (s *Session) Ping(ctx context.Context) PingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected {
		return PingResult{Alive: false, Message: notConnectedMessage}
	}
	if err := s.cfg.Transport.Ping(ctx); err != nil {
		s.state = Disconnected
		msg := fmt.Sprintf("Ping failed: %v", err)
		s.lastErr = msg
		s.cfg.Logger.Warn("probe failed, session demoted", "error", err)
		return PingResult{Alive: false, Message: msg}
	}
	return PingResult{Alive: true, Message: "EPLAN responding"}
}

// Execute dispatches one action string. It blocks until the engine
// acknowledges receipt; acknowledgement does not prove the action
// succeeded inside the engine. A transport fault is surfaced in the
// result but does not demote the session by itself.
func (s *Session) Execute(ctx context.Context, command string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected {
		return Result{Success: false, Message: notConnectedMessage, Command: command}
	}

	s.cfg.Logger.Info("executing", "command", command)
	if err := s.cfg.Transport.Dispatch(ctx, command); err != nil {
		msg := fmt.Sprintf("Execution failed: %v", err)
		s.lastErr = msg
		s.cfg.Logger.Error("dispatch failed", "command", command, "error", err)
		return Result{Success: false, Message: msg, Command: command}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Executed: %s", command),
		Command: command,
	}
}

// Disconnect releases the connection. Idempotent; safe to call when
// already disconnected.
func (s *Session) Disconnect() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.Transport.Close(); err != nil {
		s.state = Disconnected
		return Result{Success: false, Message: fmt.Sprintf("Disconnect failed: %v", err)}
	}
	s.state = Disconnected
	s.cfg.Logger.Info("disconnected")
	return Result{Success: true, Message: "Disconnected"}
}

// Connected reports whether the session is established. This is the
// precondition helper every caller checks before dispatching.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Connected
}

// Status returns the current session state without side effects.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Connected:    s.state == Connected,
		APIAvailable: s.cfg.Transport != nil,
		LastError:    s.lastErr,
	}
	if st.Connected {
		st.Port = s.port
	}
	return st
}
