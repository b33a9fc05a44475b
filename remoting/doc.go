// Package remoting manages the connection to a running EPLAN instance.
//
// EPLAN exposes a socket-based remoting channel that accepts opaque action
// strings and returns only accept/reject — there is no correlation id and
// no structured response payload. This package owns the single logical
// session to one instance: discovery of running instances on the local
// machine, connect-with-timeout, liveness probing, action dispatch, and
// disconnect. It knows nothing about action semantics.
//
// # Session lifecycle
//
// A [Session] moves between Disconnected, Connecting and Connected. It
// reaches Connected only after both a successful handshake and a
// successful liveness probe. A probe failure demotes it back to
// Disconnected; a failed dispatch does not (a single dropped action must
// not flap the session).
//
// # Results, not errors
//
// The public methods return uniform result values ([Result], [PingResult],
// [Status]) instead of errors. Transport faults are caught at this
// boundary, recorded as the session's last error, and surfaced in the
// result message. Note that a successful dispatch only proves the engine
// accepted the action string; EPLAN may still fail the operation
// internally with no signal on this channel. Callers that need an actual
// answer use the script bridge instead.
//
// The wire transport and instance discovery are strategy interfaces
// ([Transport], [Discoverer]) so tests and alternative channels can
// replace the default TCP implementation.
package remoting
