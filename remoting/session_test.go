package remoting

import (
	"context"
	"strings"
	"testing"
)

func TestConnect_ExplicitPort(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})

	res := s.Connect(context.Background(), "", "49155")
	if !res.Success {
		t.Fatalf("Connect() = %+v, want success", res)
	}
	if res.Port != "49155" {
		t.Errorf("Connect() port = %q, want %q", res.Port, "49155")
	}
	if !s.Connected() {
		t.Error("Connected() = false after successful connect")
	}
	if tr.pings != 1 {
		t.Errorf("post-connect probes = %d, want 1", tr.pings)
	}
}

func TestConnect_AutoDetectsLastInstance(t *testing.T) {
	tr := &fakeTransport{}
	d := &fakeDiscoverer{instances: []Instance{
		{Version: "2024.0", Port: "49152"},
		{Version: "2026.0", Port: "49153"},
	}}
	s := newTestSession(tr, d)

	res := s.Connect(context.Background(), "", "")
	if !res.Success {
		t.Fatalf("Connect() = %+v, want success", res)
	}
	if res.Port != "49153" {
		t.Errorf("Connect() port = %q, want last-discovered %q", res.Port, "49153")
	}
}

func TestConnect_FallsBackToDefaultPort(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})

	res := s.Connect(context.Background(), "", "")
	if !res.Success {
		t.Fatalf("Connect() = %+v, want success", res)
	}
	if res.Port != DefaultPort {
		t.Errorf("Connect() port = %q, want default %q", res.Port, DefaultPort)
	}
}

func TestConnect_HandshakeFailure(t *testing.T) {
	tr := &fakeTransport{connectErr: errBoom}
	s := newTestSession(tr, &fakeDiscoverer{})

	res := s.Connect(context.Background(), "", "49152")
	if res.Success {
		t.Fatal("Connect() succeeded, want failure")
	}
	if s.Connected() {
		t.Error("Connected() = true after failed handshake")
	}
	if st := s.Status(); st.LastError == "" {
		t.Error("Status().LastError empty after failed connect")
	}
}

func TestConnect_ProbeFailureStaysDisconnected(t *testing.T) {
	tr := &fakeTransport{pingErr: errBoom}
	s := newTestSession(tr, &fakeDiscoverer{})

	res := s.Connect(context.Background(), "", "49152")
	if res.Success {
		t.Fatal("Connect() succeeded, want failure on probe")
	}
	if !strings.Contains(res.Message, "ping failed") {
		t.Errorf("Connect() message = %q, want ping failure indication", res.Message)
	}
	if s.Connected() {
		t.Error("Connected() = true, want false: probe never succeeded")
	}
	if tr.closed == 0 {
		t.Error("transport not closed after failed probe")
	}
}

func TestPing_FaultDemotesSession(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})
	if res := s.Connect(context.Background(), "", "49152"); !res.Success {
		t.Fatalf("Connect() = %+v, want success", res)
	}

	tr.setPingErr(errBoom)
	pr := s.Ping(context.Background())
	if pr.Alive {
		t.Fatal("Ping() alive = true, want false")
	}
	if s.Connected() {
		t.Error("Connected() = true after failed ping, want self-healing demotion")
	}
}

func TestPing_NotConnected(t *testing.T) {
	s := newTestSession(&fakeTransport{}, &fakeDiscoverer{})
	pr := s.Ping(context.Background())
	if pr.Alive {
		t.Error("Ping() alive = true while disconnected")
	}
	if pr.Message != "Not connected" {
		t.Errorf("Ping() message = %q, want %q", pr.Message, "Not connected")
	}
}

func TestExecute_RequiresConnection(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})

	res := s.Execute(context.Background(), "backup /TYPE:PROJECT")
	if res.Success {
		t.Fatal("Execute() succeeded while disconnected")
	}
	if res.Message != "Not connected" {
		t.Errorf("Execute() message = %q, want %q", res.Message, "Not connected")
	}
	if tr.dispatchCount() != 0 {
		t.Errorf("dispatches = %d, want 0: no I/O before precondition", tr.dispatchCount())
	}
}

func TestExecute_DispatchesAndEchoesCommand(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})
	s.Connect(context.Background(), "", "49152")

	res := s.Execute(context.Background(), "backup /TYPE:PROJECT")
	if !res.Success {
		t.Fatalf("Execute() = %+v, want success", res)
	}
	if res.Command != "backup /TYPE:PROJECT" {
		t.Errorf("Execute() command = %q, want echo of input", res.Command)
	}
	if got := tr.dispatched[0]; got != "backup /TYPE:PROJECT" {
		t.Errorf("dispatched %q, want %q", got, "backup /TYPE:PROJECT")
	}
}

func TestExecute_FaultDoesNotDemoteSession(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})
	s.Connect(context.Background(), "", "49152")

	tr.mu.Lock()
	tr.dispatchErr = errBoom
	tr.mu.Unlock()

	res := s.Execute(context.Background(), "backup")
	if res.Success {
		t.Fatal("Execute() succeeded, want failure")
	}
	if !s.Connected() {
		t.Error("Connected() = false: a dropped dispatch must not flap the session")
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	s := newTestSession(&fakeTransport{}, &fakeDiscoverer{})
	for i := 0; i < 2; i++ {
		if res := s.Disconnect(); !res.Success {
			t.Fatalf("Disconnect() #%d = %+v, want success", i+1, res)
		}
	}
}

func TestStatus(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(tr, &fakeDiscoverer{})

	st := s.Status()
	if st.Connected {
		t.Error("Status().Connected = true before connect")
	}
	if !st.APIAvailable {
		t.Error("Status().APIAvailable = false with transport wired")
	}
	if st.Port != "" {
		t.Errorf("Status().Port = %q while disconnected, want empty", st.Port)
	}

	s.Connect(context.Background(), "", "49160")
	st = s.Status()
	if !st.Connected || st.Port != "49160" {
		t.Errorf("Status() = %+v, want connected on port 49160", st)
	}
}

func TestDiscover_ErrorReturnsEmptyAndRecords(t *testing.T) {
	s := newTestSession(&fakeTransport{}, &fakeDiscoverer{err: errBoom})

	if got := s.Discover(context.Background()); len(got) != 0 {
		t.Errorf("Discover() returned %d instances, want 0", len(got))
	}
	if st := s.Status(); !strings.Contains(st.LastError, "discovery failed") {
		t.Errorf("Status().LastError = %q, want discovery failure recorded", st.LastError)
	}
}
