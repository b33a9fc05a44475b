// Package eplan is the unified facade for remote EPLAN automation.
//
// A [Client] bundles the three core pieces — the remoting session, the
// script bridge, and the scripted-API helpers — behind the narrow
// contract every higher-level action function is built from:
//
//	client, err := eplan.New(eplan.Options{})
//	res := client.Connect(ctx, "", "")       // port auto-detected
//	res = client.ExecuteAction(ctx, "backup /TYPE:PROJECT /ARCHIVENAME:demo.zw1")
//	out := client.RunScript(ctx, payload, 30*time.Second)
//	client.Disconnect()
//
// ExecuteAction's success only means the engine accepted the action;
// there is no channel for the action's internal outcome. RunScript is
// the path that returns an actual answer.
//
// One client per process: the engine's remoting channel is stateful and
// ordering-sensitive, so all automation should flow through a single
// Client, which serializes dispatch internally.
package eplan
