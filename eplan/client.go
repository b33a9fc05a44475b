package eplan

import (
	"context"
	"time"

	"github.com/jonwraymond/eplanremote/remoting"
	"github.com/jonwraymond/eplanremote/script"
	"github.com/jonwraymond/eplanremote/scripted"
)

// Client is the single entry point for automating one engine instance.
type Client struct {
	session  *remoting.Session
	bridge   *script.Bridge
	scripted *scripted.Client
}

// New creates a client with the given options.
func New(opts Options) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	session := remoting.NewSession(remoting.Config{
		Host:           opts.Host,
		ConnectTimeout: opts.ConnectTimeout,
		Transport:      opts.Transport,
		Discoverer:     opts.Discoverer,
		Logger:         opts.Logger,
	})

	mailbox := opts.Mailbox
	if mailbox == nil && opts.ResultDir != "" {
		mailbox = &script.FileMailbox{Dir: opts.ResultDir}
	}
	bridge, err := script.NewBridge(script.Config{
		Executor:       session,
		ScriptDir:      opts.ScriptDir,
		Mailbox:        mailbox,
		DefaultTimeout: opts.ScriptTimeout,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		session:  session,
		bridge:   bridge,
		scripted: scripted.NewClient(bridge),
	}, nil
}

// Connect establishes the session. Empty host and port fall back to the
// configured host and port auto-detection.
func (c *Client) Connect(ctx context.Context, host, port string) remoting.Result {
	return c.session.Connect(ctx, host, port)
}

// Disconnect releases the session. Idempotent.
func (c *Client) Disconnect() remoting.Result {
	return c.session.Disconnect()
}

// Ping probes the engine's liveness.
func (c *Client) Ping(ctx context.Context) remoting.PingResult {
	return c.session.Ping(ctx)
}

// Status returns the current session state without side effects.
func (c *Client) Status() remoting.Status {
	return c.session.Status()
}

// Servers lists the running engine instances on the local machine.
func (c *Client) Servers(ctx context.Context) []remoting.Instance {
	return c.session.Discover(ctx)
}

// ExecuteAction dispatches one action string. Success only means the
// engine accepted the action.
func (c *Client) ExecuteAction(ctx context.Context, command string) remoting.Result {
	return c.session.Execute(ctx, command)
}

// RunScript executes a C# payload inside the engine and returns its
// decoded result document. The payload must contain the bridge's
// result-path placeholder. A zero timeout uses the configured default.
func (c *Client) RunScript(ctx context.Context, payload string, timeout time.Duration) script.RunResult {
	return c.bridge.Run(ctx, payload, timeout)
}

// Scripted returns the typed helpers for the engine's in-process APIs
// (settings, path variables, parts database).
func (c *Client) Scripted() *scripted.Client {
	return c.scripted
}

// Session exposes the underlying session for callers that build their
// own action functions on the precondition helper.
func (c *Client) Session() *remoting.Session {
	return c.session
}
