package remoting

import (
	"context"
	"errors"
	"sync"
)

// fakeTransport is an in-memory Transport that records calls and fails on
// demand. Safe for concurrent use so tests can exercise the session lock.
type fakeTransport struct {
	mu sync.Mutex

	connectErr  error
	pingErr     error
	dispatchErr error

	connects   int
	pings      int
	dispatched []string
	closed     int
}

func (f *fakeTransport) Connect(ctx context.Context, host, port string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	return f.connectErr
}

func (f *fakeTransport) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeTransport) Dispatch(ctx context.Context, command string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, command)
	return f.dispatchErr
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeTransport) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeTransport) dispatchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dispatched)
}

// fakeDiscoverer returns a fixed instance list or error.
type fakeDiscoverer struct {
	instances []Instance
	err       error
}

func (f *fakeDiscoverer) Discover(ctx context.Context) ([]Instance, error) {
	return f.instances, f.err
}

var errBoom = errors.New("boom")

// newTestSession wires a session around the given fakes with defaults
// suitable for tests.
func newTestSession(tr Transport, d Discoverer) *Session {
	return NewSession(Config{Transport: tr, Discoverer: d})
}
