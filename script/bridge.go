package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/eplanremote/action"
	"github.com/jonwraymond/eplanremote/remoting"
)

// ResultPathToken is the placeholder in script payloads that the bridge
// replaces with the job's result path before dispatch.
const ResultPathToken = "{{RESULT_PATH}}"

// DefaultTimeout bounds a script run when the caller passes none.
const DefaultTimeout = 30 * time.Second

// Executor is what the bridge needs from the transport session. It is
// satisfied by *remoting.Session.
//
// Contract:
// - Concurrency: implementations must serialize dispatch internally.
// - Errors: faults are folded into the returned Result, never raised.
type Executor interface {
	Connected() bool
	Execute(ctx context.Context, command string) remoting.Result
}

// Logger is the interface for logging.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Config holds the configuration for a script bridge.
type Config struct {
	// Executor dispatches the register/trigger/unregister actions.
	// Required.
	Executor Executor

	// ScriptDir is where generated script files are written.
	// Default: <tmp>/eplanremote/scripts.
	ScriptDir string

	// Mailbox is the reply channel strategy.
	// Default: &FileMailbox{Dir: <tmp>/eplanremote/results}.
	Mailbox Mailbox

	// DefaultTimeout applies when Run is called with a zero timeout.
	// Default: 30s.
	DefaultTimeout time.Duration

	// Logger is an optional logger for bridge events.
	Logger Logger
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Executor == nil {
		return fmt.Errorf("%w: Executor is required", ErrConfiguration)
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.ScriptDir == "" {
		c.ScriptDir = filepath.Join(os.TempDir(), "eplanremote", "scripts")
	}
	if c.Mailbox == nil {
		c.Mailbox = &FileMailbox{Dir: filepath.Join(os.TempDir(), "eplanremote", "results")}
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
}

// RunResult contains the outcome of one script run.
type RunResult struct {
	// Success reports whether the script ran and produced a decodable
	// result document.
	Success bool `json:"success"`

	// Results is the decoded result document on success.
	Results map[string]any `json:"results,omitempty"`

	// Message describes the failure when Success is false.
	Message string `json:"message,omitempty"`
}

// Bridge executes script payloads inside the engine and collects their
// results. Each run is independent; concurrent runs are safe because job
// identifiers never collide and dispatch is serialized by the Executor.
type Bridge struct {
	cfg Config
}

// NewBridge creates a bridge with the given configuration.
// Returns ErrConfiguration if a required field is missing.
func NewBridge(cfg Config) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Bridge{cfg: cfg}, nil
}

// Run executes one script payload and waits for its result document.
//
// The payload's ResultPathToken occurrences are substituted with the
// job's result path, the script is written to disk, registered with the
// engine, triggered, and the mailbox is polled until the document appears
// or the timeout elapses. On every exit path the script is unregistered
// and both the script and result files are removed, best-effort.
func (b *Bridge) Run(ctx context.Context, payload string, timeout time.Duration) RunResult {
	if timeout <= 0 {
		timeout = b.cfg.DefaultTimeout
	}
	if !b.cfg.Executor.Connected() {
		return RunResult{Success: false, Message: "Not connected"}
	}

	jobID := newJobID()
	slot, err := b.cfg.Mailbox.Open(jobID)
	if err != nil {
		return RunResult{Success: false, Message: fmt.Sprintf("Failed to open result slot: %v", err)}
	}

	scriptPath := filepath.Join(b.cfg.ScriptDir, "script_"+jobID+".cs")
	defer b.cleanup(ctx, scriptPath, slot)

	source := strings.ReplaceAll(payload, ResultPathToken, escapeLiteral(slot.Address()))
	if err := os.MkdirAll(b.cfg.ScriptDir, 0o755); err != nil {
		return RunResult{Success: false, Message: fmt.Sprintf("Failed to write script: %v", err)}
	}
	if err := os.WriteFile(scriptPath, []byte(source), 0o644); err != nil {
		return RunResult{Success: false, Message: fmt.Sprintf("Failed to write script: %v", err)}
	}

	b.cfg.Logger.Info("running script", "job", jobID, "timeout", timeout.String())

	reg := b.cfg.Executor.Execute(ctx, registerCommand(scriptPath))
	if !reg.Success {
		return RunResult{Success: false, Message: "Failed to register script: " + reg.Message}
	}
	trig := b.cfg.Executor.Execute(ctx, executeCommand(scriptPath))
	if !trig.Success {
		return RunResult{Success: false, Message: "Failed to execute script: " + trig.Message}
	}

	data, err := slot.Await(ctx, timeout)
	if err != nil {
		if errors.Is(err, ErrResultTimeout) {
			b.cfg.Logger.Warn("script timed out", "job", jobID)
			return RunResult{Success: false, Message: timeoutMessage}
		}
		return RunResult{Success: false, Message: fmt.Sprintf("Failed to read script results: %v", err)}
	}

	var results map[string]any
	if err := json.Unmarshal(data, &results); err != nil {
		return RunResult{
			Success: false,
			Message: fmt.Sprintf("Invalid JSON in script results: %v; first bytes: %s", err, truncate(data, 256)),
		}
	}

	return RunResult{Success: true, Results: results}
}

// cleanup unregisters the script and removes both transient files. It
// runs on every exit path and its own failures never mask the primary
// result; the parent context may already be canceled, so dispatch uses a
// detached context.
func (b *Bridge) cleanup(ctx context.Context, scriptPath string, slot Slot) {
	res := b.cfg.Executor.Execute(context.WithoutCancel(ctx), unregisterCommand(scriptPath))
	if !res.Success {
		b.cfg.Logger.Warn("unregister failed", "script", scriptPath, "message", res.Message)
	}
	if err := os.Remove(scriptPath); err != nil && !os.IsNotExist(err) {
		b.cfg.Logger.Warn("script file removal failed", "script", scriptPath, "error", err)
	}
	if err := slot.Discard(); err != nil {
		b.cfg.Logger.Warn("result slot discard failed", "error", err)
	}
}

func registerCommand(scriptPath string) string {
	return action.Build("RegisterScript", action.String("ScriptFile", scriptPath))
}

func executeCommand(scriptPath string) string {
	return action.Build("ExecuteScript", action.String("ScriptFile", scriptPath))
}

func unregisterCommand(scriptPath string) string {
	return action.Build("UnregisterScript", action.String("ScriptFile", scriptPath))
}

// newJobID returns a short collision-resistant job identifier. Two
// concurrent runs must never share script or result paths.
func newJobID() string {
	return uuid.NewString()[:8]
}

// escapeLiteral prepares a path for embedding in the payload's literal
// string syntax. C# verbatim strings still need backslashes doubled when
// the payload drops the @ prefix, so double them unconditionally.
func escapeLiteral(path string) string {
	return strings.ReplaceAll(path, `\`, `\\`)
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
