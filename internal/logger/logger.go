// Package logger exposes a process-wide slog logger with leveled helpers.
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is the shared logger. It starts on stderr; interactive sessions
// swap in a file sink via UseFile before entering the alternate screen.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// UseFile points the shared logger at an append-only file.
func UseFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	Logger = slog.New(slog.NewTextHandler(f, nil))
	return nil
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
