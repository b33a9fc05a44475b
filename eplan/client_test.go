package eplan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/eplanremote/remoting"
	"github.com/jonwraymond/eplanremote/script"
)

// wireFake implements remoting.Transport and plays the engine end to end:
// triggered scripts get their result document written for them.
type wireFake struct {
	mu       sync.Mutex
	dispatch []string
	result   string
}

func (w *wireFake) Connect(ctx context.Context, host, port string) error { return nil }
func (w *wireFake) Ping(ctx context.Context) error                       { return nil }
func (w *wireFake) Close() error                                         { return nil }

func (w *wireFake) Dispatch(ctx context.Context, command string) error {
	w.mu.Lock()
	w.dispatch = append(w.dispatch, command)
	w.mu.Unlock()

	if strings.HasPrefix(command, "ExecuteScript") && w.result != "" {
		scriptPath := strings.Trim(strings.TrimPrefix(command, "ExecuteScript /ScriptFile:"), `"`)
		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return err
		}
		const marker = `File.WriteAllText(@"`
		i := strings.Index(string(source), marker)
		if i >= 0 {
			rest := string(source)[i+len(marker):]
			path := rest[:strings.Index(rest, `"`)]
			return os.WriteFile(path, []byte(w.result), 0o644)
		}
	}
	return nil
}

func newTestClient(t *testing.T, w *wireFake) *Client {
	t.Helper()
	c, err := New(Options{
		ScriptDir:  filepath.Join(t.TempDir(), "scripts"),
		ResultDir:  filepath.Join(t.TempDir(), "results"),
		Transport:  w,
		Discoverer: staticDiscoverer{},
	})
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	return c
}

type staticDiscoverer []remoting.Instance

func (d staticDiscoverer) Discover(ctx context.Context) ([]remoting.Instance, error) {
	return d, nil
}

func TestNew_DefaultsAreUsable(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	if st := c.Status(); st.Connected {
		t.Error("Status().Connected = true before Connect")
	}
}

func TestNew_ConflictingMailboxOptions(t *testing.T) {
	_, err := New(Options{ResultDir: "/tmp/x", Mailbox: &script.FileMailbox{Dir: "/tmp/y"}})
	if !errors.Is(err, ErrConflictingMailbox) {
		t.Errorf("New() error = %v, want ErrConflictingMailbox", err)
	}
}

func TestClient_ConnectAndExecute(t *testing.T) {
	w := &wireFake{}
	c := newTestClient(t, w)

	if res := c.Connect(context.Background(), "", "49152"); !res.Success {
		t.Fatalf("Connect() = %+v, want success", res)
	}
	if pr := c.Ping(context.Background()); !pr.Alive {
		t.Fatalf("Ping() = %+v, want alive", pr)
	}

	res := c.ExecuteAction(context.Background(), "XPrjActionProjectClose")
	if !res.Success {
		t.Fatalf("ExecuteAction() = %+v, want success", res)
	}
	if w.dispatch[0] != "XPrjActionProjectClose" {
		t.Errorf("dispatched %q, want the action string", w.dispatch[0])
	}

	if res := c.Disconnect(); !res.Success {
		t.Errorf("Disconnect() = %+v, want success", res)
	}
	if c.Status().Connected {
		t.Error("Status().Connected = true after Disconnect")
	}
}

func TestClient_ExecuteRequiresConnection(t *testing.T) {
	c := newTestClient(t, &wireFake{})
	if res := c.ExecuteAction(context.Background(), "backup"); res.Success {
		t.Error("ExecuteAction() succeeded while disconnected")
	}
}

func TestClient_RunScriptEndToEnd(t *testing.T) {
	w := &wireFake{result: `{"success": true, "count": 3}`}
	c := newTestClient(t, w)
	c.Connect(context.Background(), "", "49152")

	payload := `class J { void Run() { File.WriteAllText(@"{{RESULT_PATH}}", json); } }`
	res := c.RunScript(context.Background(), payload, 2*time.Second)
	if !res.Success {
		t.Fatalf("RunScript() = %+v, want success", res)
	}
	if got := res.Results["count"].(float64); got != 3 {
		t.Errorf("Results[count] = %v, want 3", got)
	}
}

func TestClient_ServersUsesDiscoverer(t *testing.T) {
	c, err := New(Options{
		Transport: &wireFake{},
		Discoverer: staticDiscoverer{
			{Version: "2025.0", Port: "49152"},
			{Version: "2026.0", Port: "49153"},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	servers := c.Servers(context.Background())
	if len(servers) != 2 {
		t.Fatalf("Servers() returned %d instances, want 2", len(servers))
	}

	// Auto-detection picks the most recently started instance.
	if res := c.Connect(context.Background(), "", ""); res.Port != "49153" {
		t.Errorf("Connect() port = %q, want %q", res.Port, "49153")
	}
}
