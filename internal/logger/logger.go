package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger interface for structured logging. Fields are alternating key/value
// pairs.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
	With(fields ...interface{}) Logger
}

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	logger *slog.Logger
	exit   func(int)
}

// Options controls how New builds the handler.
type Options struct {
	Level  string // debug, info, warn, error
	JSON   bool
	Output io.Writer
}

// New creates a logger writing text or JSON records.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return &SlogLogger{logger: slog.New(handler), exit: os.Exit}
}

// NewForEnvironment picks JSON output outside development.
func NewForEnvironment(environment, level string) Logger {
	return New(Options{Level: level, JSON: environment != "development"})
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return New(Options{Output: io.Discard})
}

// ParseLevel converts a level name, defaulting to info.
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

// Info logs an info message
func (l *SlogLogger) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, fields...)
}

// Error logs an error message
func (l *SlogLogger) Error(msg string, err error, fields ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, fields...)...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, fields...)
}

// Debug logs a debug message
func (l *SlogLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, fields...)
}

// Fatal logs a fatal error and exits
func (l *SlogLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelError, msg, append([]interface{}{"error", err}, fields...)...)
	l.exit(1)
}

// With returns a logger that adds fields to every record.
func (l *SlogLogger) With(fields ...interface{}) Logger {
	return &SlogLogger{logger: l.logger.With(fields...), exit: l.exit}
}
