package logger

import (
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger is an implementation of Logger that logs to stdout.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a console logger with human readable text output.
func NewConsoleLogger(level string) Logger {
	return newConsoleLogger(os.Stdout, level, false)
}

// NewJSONConsoleLogger creates a console logger emitting one JSON object per line.
func NewJSONConsoleLogger(level string) Logger {
	return newConsoleLogger(os.Stdout, level, true)
}

func newConsoleLogger(w io.Writer, level string, json bool) *ConsoleLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &ConsoleLogger{logger: slog.New(handler)}
}

// Info logs an informational message to the console.
func (l *ConsoleLogger) Info(args ...interface{}) {
	msg, attrs := splitArgs(args...)
	l.logger.Info(msg, attrs...)
}

// Warn logs a warning message to the console.
func (l *ConsoleLogger) Warn(args ...interface{}) {
	msg, attrs := splitArgs(args...)
	l.logger.Warn(msg, attrs...)
}

// Error logs an error message to the console.
func (l *ConsoleLogger) Error(args ...interface{}) {
	msg, attrs := splitArgs(args...)
	l.logger.Error(msg, attrs...)
}

// Fatal logs a fatal message and exits.
func (l *ConsoleLogger) Fatal(args ...interface{}) {
	msg, attrs := splitArgs(args...)
	l.logger.Error(msg, attrs...)
	os.Exit(1)
}

// Panic logs a panic message and panics.
func (l *ConsoleLogger) Panic(args ...interface{}) {
	msg, attrs := splitArgs(args...)
	l.logger.Error(msg, attrs...)
	panic(msg)
}
