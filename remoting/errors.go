package remoting

import "errors"

// Sentinel errors for transport-level classification.
var (
	// ErrNotConnected indicates an operation that requires an established
	// session was attempted while disconnected.
	ErrNotConnected = errors.New("not connected")

	// ErrHandshakeFailed indicates the initial exchange with the engine
	// was rejected or malformed.
	ErrHandshakeFailed = errors.New("handshake failed")

	// ErrDispatchRejected indicates the engine refused an action string.
	ErrDispatchRejected = errors.New("dispatch rejected")
)

// notConnectedMessage is the uniform precondition-failure message surfaced
// by every operation that requires a connected session.
const notConnectedMessage = "Not connected"
