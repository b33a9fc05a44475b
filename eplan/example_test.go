package eplan_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/eplanremote/eplan"
	"github.com/jonwraymond/eplanremote/remoting"
)

// stubTransport accepts everything; it stands in for a running engine.
type stubTransport struct{}

func (stubTransport) Connect(ctx context.Context, host, port string) error { return nil }
func (stubTransport) Ping(ctx context.Context) error                       { return nil }
func (stubTransport) Dispatch(ctx context.Context, command string) error   { return nil }
func (stubTransport) Close() error                                         { return nil }

type stubDiscoverer struct{}

func (stubDiscoverer) Discover(ctx context.Context) ([]remoting.Instance, error) {
	return []remoting.Instance{{Version: "2026.0", Variant: "Electric P8", Port: "49153"}}, nil
}

func ExampleNew() {
	client, err := eplan.New(eplan.Options{
		Transport:  stubTransport{},
		Discoverer: stubDiscoverer{},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	res := client.Connect(context.Background(), "", "")
	fmt.Println(res.Message)
	// Output:
	// Connected to EPLAN at localhost:49153
}

func ExampleClient_ExecuteAction() {
	client, _ := eplan.New(eplan.Options{
		Transport:  stubTransport{},
		Discoverer: stubDiscoverer{},
	})
	ctx := context.Background()
	client.Connect(ctx, "", "49152")

	res := client.ExecuteAction(ctx, `backup /TYPE:PROJECT /ARCHIVENAME:demo.zw1`)
	fmt.Println(res.Success)
	fmt.Println(res.Command)
	// Output:
	// true
	// backup /TYPE:PROJECT /ARCHIVENAME:demo.zw1
}
