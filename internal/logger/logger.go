package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// globalLogger holds the process logger once Init or Get has run.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the process logger. Only the first call (of Init or Get)
// has any effect.
func Init(level, format string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, format)
	})
	return globalLogger
}

// Get returns the process logger, initializing a console logger at level if
// Init has not been called yet.
func Get(level string) *Logger {
	return Init(level, FormatConsole)
}

// Nop returns a logger that discards everything. Used by tests and as the
// fallback for optional dependencies.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Named returns a child logger tagged with component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(component)}
}
