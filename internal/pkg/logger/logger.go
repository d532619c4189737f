package logger

// Logger defines the logging interface.
//
// Calls of the form Info("message", "key", value, ...) are emitted as structured
// attributes; any other argument list is concatenated into the message.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
