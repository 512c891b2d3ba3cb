// Package logging configures the process wide slog logger.
//
// The terminal belongs to the grid, so records go to a file rather than
// stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup configures the global slog logger to write text records to file at
// the given level. The returned closer releases the file.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
func Setup(level, file string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(New(f, level))

	return f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Discard returns a logger dropping every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTable returns a logger tagged with a table name.
func WithTable(l *slog.Logger, table string, args ...any) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(append([]any{"table", table}, args...)...)
}
