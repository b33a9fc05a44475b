package remoting

// Result is the uniform outcome of a session operation. The session never
// returns errors across its public boundary; faults are folded into the
// result message.
type Result struct {
	// Success reports whether the operation completed. For Execute this
	// only means the engine accepted and dispatched the action, not that
	// the action succeeded internally.
	Success bool `json:"success"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Command echoes the dispatched action string, when applicable.
	Command string `json:"command,omitempty"`

	// Port is the negotiated remoting port, set on successful connect.
	Port string `json:"port,omitempty"`
}

// PingResult is the outcome of a liveness probe.
type PingResult struct {
	// Alive reports whether the engine answered the probe.
	Alive bool `json:"alive"`

	// Message describes the probe outcome.
	Message string `json:"message"`
}

// Status is a pure read of the session state. It has no side effects.
type Status struct {
	// Connected reports whether the session is established.
	Connected bool `json:"connected"`

	// APIAvailable reports whether a usable transport is wired in.
	APIAvailable bool `json:"api_loaded"`

	// Port is the negotiated port while connected, empty otherwise.
	Port string `json:"port,omitempty"`

	// LastError is the most recent recorded fault, empty if none.
	LastError string `json:"last_error,omitempty"`
}
