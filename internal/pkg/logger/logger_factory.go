package logger

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
)

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the singleton logger.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the initialized logger instance.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(c *config.LoggerSettings) (Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch c.LogType {
	case config.LogTypeConsole:
		if c.Format == config.LogFormatJSON {
			return NewJSONConsoleLogger(c.LogLevel), nil
		}
		return NewConsoleLogger(c.LogLevel), nil
	case config.LogTypeFile:
		return NewFileLogger(c.LogLevel, c.FilePath, c.MaxSize, c.MaxBackups, c.MaxAge, c.Compress), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}

// splitArgs separates a leading message from trailing key/value pairs.
// Falls back to a plain concatenated message when the pairs are malformed.
func splitArgs(args ...interface{}) (string, []any) {
	if len(args) < 3 || len(args)%2 == 0 {
		return formatArgs(args...), nil
	}
	msg, ok := args[0].(string)
	if !ok {
		return formatArgs(args...), nil
	}
	attrs := make([]any, 0, len(args)-1)
	for i := 1; i < len(args); i += 2 {
		if _, ok := args[i].(string); !ok {
			return formatArgs(args...), nil
		}
		attrs = append(attrs, args[i], args[i+1])
	}
	return msg, attrs
}
