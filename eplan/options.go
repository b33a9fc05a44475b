package eplan

import (
	"errors"
	"time"

	"github.com/jonwraymond/eplanremote/remoting"
	"github.com/jonwraymond/eplanremote/script"
)

// Errors returned by Options validation.
var (
	ErrConflictingMailbox = errors.New("eplan: Mailbox and ResultDir are mutually exclusive")
)

// Options configures a Client. The zero value is usable: it connects to
// localhost with port auto-detection and keeps script artifacts under
// the system temp directory.
type Options struct {
	// Host is the default engine host. Default "localhost".
	Host string

	// ConnectTimeout bounds the handshake and post-handshake probe.
	// Default 10s.
	ConnectTimeout time.Duration

	// ScriptDir is where generated script files are written.
	// Default: <tmp>/eplanremote/scripts.
	ScriptDir string

	// ResultDir is where the default file mailbox collects result
	// documents. Default: <tmp>/eplanremote/results.
	ResultDir string

	// ScriptTimeout applies to script runs without an explicit timeout.
	// Default 30s.
	ScriptTimeout time.Duration

	// Transport overrides the wire channel. Default: TCP.
	Transport remoting.Transport

	// Discoverer overrides instance discovery. Default: port probing.
	Discoverer remoting.Discoverer

	// Mailbox overrides the script reply channel. Mutually exclusive
	// with ResultDir.
	Mailbox script.Mailbox

	// Logger receives session and bridge events.
	Logger remoting.Logger
}

// validate checks option consistency.
func (o *Options) validate() error {
	if o.Mailbox != nil && o.ResultDir != "" {
		return ErrConflictingMailbox
	}
	return nil
}
