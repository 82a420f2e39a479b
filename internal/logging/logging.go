// Package logging builds the structured logger shared by jif's internal
// packages, in the style of soockee-pixel-bot-go's logger.go: a JSON
// handler over a leveled slog.Logger, kept separate from the CLI's
// human-facing fmt output.
package logging

import (
	"log/slog"
	"os"
)

// New returns a structured slog.Logger writing JSON to stderr at the
// given level, leaving stdout free for CLI output the user may pipe or
// redirect.
func New(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Discard returns a logger that drops everything, used by tests and by
// library callers who construct components directly without wiring a
// logger of their own.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
