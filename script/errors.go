package script

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete bridge
	// configuration.
	ErrConfiguration = errors.New("script: configuration error")

	// ErrResultTimeout indicates the deadline elapsed before the result
	// document appeared.
	ErrResultTimeout = errors.New("script: timeout waiting for result")
)

// timeoutMessage is the uniform timeout failure surfaced to callers,
// distinct from registration, trigger and parse failures.
const timeoutMessage = "Timeout waiting for script results"
