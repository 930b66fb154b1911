package app

import (
	"io"
	"log/slog"
)

// newLogger builds the application's isolated slog.Logger. The global logger
// is left untouched so the planner packages can be embedded elsewhere without
// overriding the host's logging configuration.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps a level string to its slog level. Unrecognized values fall
// back to info.
func parseLevel(s string) slog.Level {
	switch s {
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
