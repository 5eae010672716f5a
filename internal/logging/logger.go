package logging

import (
	"io"
	"log/slog"
)

// New returns a text slog.Logger tagged with component. Verbose enables
// debug output; otherwise only warnings and errors are written.
func New(w io.Writer, component string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("component", component)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
