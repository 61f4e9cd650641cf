// Package logging provides slog based logging for changelog-generator.
// Logs go to a console writer (stderr) and optionally to a log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog.Logger with optional file output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	logger *slog.Logger
	file   *os.File
	mu     sync.Mutex
}

// New creates a Logger writing text records to w. Pass a *slog.LevelVar
// to change the level after construction.
// A nil w disables logging.
func New(w io.Writer, level slog.Leveler) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		logger: newSlogLogger(w, level),
	}
}

// NewWithFile creates a Logger writing to w and appending to the file at path.
func NewWithFile(w io.Writer, path string, level slog.Leveler) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	out := io.Writer(f)
	if w != nil {
		out = io.MultiWriter(w, f)
	}
	return &Logger{
		logger: newSlogLogger(out, level),
		file:   f,
	}, nil
}

func newSlogLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel parses a log level string into slog.Level.
// Unknown values fall back to warn.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) log(level slog.Level, category, msg string, args []any) {
	l.logger.Log(context.Background(), level, msg, append([]any{"category", category}, args...)...)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string, args ...any) {
	l.log(slog.LevelDebug, category, msg, args)
}

// Info logs an info message.
func (l *Logger) Info(category, msg string, args ...any) {
	l.log(slog.LevelInfo, category, msg, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string, args ...any) {
	l.log(slog.LevelWarn, category, msg, args)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string, args ...any) {
	l.log(slog.LevelError, category, msg, args)
}
