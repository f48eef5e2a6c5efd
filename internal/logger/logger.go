// Package logger builds the structured loggers used across the analyser.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the default console logger.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a logger writing structured JSON to w. Tests use
// this to capture output.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Nop returns a disabled logger for callers that do not want a diagnostic
// stream (the engine still accumulates its metadata log either way).
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
