// Package logging provides the server's structured logger. Logs go to
// stderr only — stdout belongs to the MCP stdio transport.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger writing text to stderr at the given level.
// Unknown level strings fall back to info.
func New(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
