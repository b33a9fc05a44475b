package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Mailbox is the reply channel for scripted jobs.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; slots
//   opened for different job IDs must never share an address.
// - Errors: Open fails only when no slot can be provided at all.
type Mailbox interface {
	// Open prepares a reply slot for one job. The job ID is
	// collision-resistant, so the returned slot's address is unique.
	Open(jobID string) (Slot, error)
}

// Slot is one job's reply channel.
//
// Contract:
// - Context: Await must honor cancellation and return ctx.Err() when
//   canceled before the reply arrives.
// - Errors: Await returns ErrResultTimeout when the deadline elapses.
// - Ownership: the returned bytes are caller-owned.
type Slot interface {
	// Address is the location the executing script writes its result
	// document to, in the form the script payload embeds.
	Address() string

	// Await blocks until the result document arrives or the timeout
	// elapses, and returns the raw document bytes.
	Await(ctx context.Context, timeout time.Duration) ([]byte, error)

	// Discard removes the slot and any reply it holds. Idempotent and
	// best-effort.
	Discard() error
}

// File mailbox defaults.
const (
	// DefaultPollInterval is how often the result path is checked.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultSettleDelay is the pause between the result file appearing
	// and the read, tolerating a non-atomic write by the engine.
	DefaultSettleDelay = 100 * time.Millisecond
)

// FileMailbox implements Mailbox with per-job JSON files in a directory,
// polled for existence. This matches the one return channel EPLAN scripts
// actually have: the filesystem.
type FileMailbox struct {
	// Dir is where result files live. Created on first use.
	Dir string

	// PollInterval between existence checks. Default 100ms.
	PollInterval time.Duration

	// SettleDelay before reading a freshly appeared file. Default 100ms.
	SettleDelay time.Duration
}

// Open creates the result directory when needed and returns the slot for
// result_<jobID>.json.
func (m *FileMailbox) Open(jobID string) (Slot, error) {
	if m.Dir == "" {
		return nil, fmt.Errorf("%w: FileMailbox.Dir is empty", ErrConfiguration)
	}
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create result directory: %w", err)
	}

	poll := m.PollInterval
	if poll == 0 {
		poll = DefaultPollInterval
	}
	settle := m.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}
	return &fileSlot{
		path:   filepath.Join(m.Dir, "result_"+jobID+".json"),
		poll:   poll,
		settle: settle,
	}, nil
}

type fileSlot struct {
	path   string
	poll   time.Duration
	settle time.Duration
}

func (s *fileSlot) Address() string {
	return s.path
}

// Await polls for the result path. There is no completion event on the
// engine side, so existence plus a short settle delay is the arrival
// signal.
func (s *fileSlot) Await(ctx context.Context, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		if _, err := os.Stat(s.path); err == nil {
			select {
			case <-time.After(s.settle):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return os.ReadFile(s.path)
		}

		if time.Now().After(deadline) {
			return nil, ErrResultTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Discard removes the result file if present.
func (s *fileSlot) Discard() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
