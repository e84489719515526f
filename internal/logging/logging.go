// Package logging builds the slog loggers used by the stt command
// line. The pure type engine never logs; only the outer surfaces
// (registry, CLI) take a logger.
package logging

import (
	"io"
	"log/slog"

	"stt/internal/config"
)

// New returns a text logger writing to w at the level named by cfg.
// A CLI-provided level overrides the configured one when non-empty.
func New(w io.Writer, cfg *config.Config, cliLevel string) *slog.Logger {
	level := cfg.Logging.Level
	if cliLevel != "" {
		level = cliLevel
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
