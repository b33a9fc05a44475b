package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// zeroLogger adapts a zerolog.Logger to the key/value logger the
// session and bridge expect. Output goes to stderr so it never mixes
// with the MCP stdio stream.
type zeroLogger struct {
	l zerolog.Logger
}

func newLogger(debug bool) *zeroLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	l := zerolog.New(output).Level(level).With().Timestamp().Str("app", "eplanremote").Logger()
	return &zeroLogger{l: l}
}

func (z *zeroLogger) Info(msg string, args ...any)  { emit(z.l.Info(), msg, args) }
func (z *zeroLogger) Warn(msg string, args ...any)  { emit(z.l.Warn(), msg, args) }
func (z *zeroLogger) Error(msg string, args ...any) { emit(z.l.Error(), msg, args) }

// emit attaches the trailing key/value pairs as structured fields.
func emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
