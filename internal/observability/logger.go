// Package observability holds the process logger used by the commands.
package observability

import (
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

// Global logger, text to stderr so stdout stays clean for output.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

// Logger returns the global logger.
func Logger() *slog.Logger {
	return logger
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetVerbose enables debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
		return
	}
	SetLevel(slog.LevelInfo)
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}
