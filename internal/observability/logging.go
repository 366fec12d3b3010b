// Package observability provides structured logging and telemetry setup.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// LogLevelEnv overrides the default log level.
const LogLevelEnv = "PHONEDIFF_LOG_LEVEL"

// ParseLevel maps a level name to a slog level. Unknown names are rejected.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewLogger builds a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// InitLogger configures the global slog logger and returns it.
func InitLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := NewLogger(w, level)
	slog.SetDefault(logger)
	return logger
}
