package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a leveled structured logger. Calls take a message followed by
// alternating key/value pairs, e.g. log.Info("Cache hit", "key", key).
type Logger struct {
	*slog.Logger
}

// NewLogger returns a JSON logger writing to stdout at the given level.
// Unknown or empty levels fall back to info.
func NewLogger(level string) *Logger {
	return New(os.Stdout, level)
}

func New(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
