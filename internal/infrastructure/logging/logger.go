// Package logging provides structured logging utilities.
//
// Logs are bracket-formatted with colors when writing to a terminal:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/smsledger/sms-expense-backend/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.Logging) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := NewHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system prefix (e.g., "ingest",
// "scan", "api"), useful for scoped loggers injected into components.
func NewLoggerWithSystem(cfg config.Logging, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}
