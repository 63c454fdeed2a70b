package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/inkwell-tui/inkwell/pkg/config"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, component-tagged messages to the log file. The UI
// owns the terminal, so nothing is printed to stdout.
type Logger struct {
	level     LogLevel
	logger    *log.Logger
	file      *os.File
	component string
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// Init initializes the default logger from global config
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		return nil // Already initialized
	}

	settings := config.Get()
	logger, err := New(parseLevel(settings.Logging.Level), settings.Logging.LogFile, settings.Logging.Preserve)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defaultLogger = logger
	return nil
}

// New creates a new Logger instance writing to the given file
func New(level LogLevel, logFile string, preserve bool) (*Logger, error) {
	logPath := logFile
	if !filepath.IsAbs(logPath) {
		logPath = config.BuildSettingsPath(filepath.Base(logPath))
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if preserve {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(logPath, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		level:  level,
		logger: log.New(file, "", log.LstdFlags),
		file:   file,
	}, nil
}

// WithComponent returns a logger tagged with the given component name. Safe
// to call before Init; the returned logger discards until then.
func WithComponent(component string) *Logger {
	return &Logger{component: component}
}

// parseLevel converts a string level to LogLevel
func parseLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// log writes a message with key/value pairs if the level is enabled
func (l *Logger) log(level LogLevel, msg string, keyvals ...interface{}) {
	target := l
	if target.logger == nil {
		mu.RLock()
		target = defaultLogger
		mu.RUnlock()
		if target == nil {
			return
		}
	}
	if level < target.level {
		return
	}

	var b strings.Builder
	b.WriteString("[" + level.String() + "]")
	if l.component != "" {
		b.WriteString(" [" + l.component + "]")
	}
	b.WriteString(" " + msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	target.logger.Print(b.String())
}

// Debug logs a debug message with optional key/value pairs
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(LevelDebug, msg, keyvals...)
}

// Info logs an info message with optional key/value pairs
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(LevelInfo, msg, keyvals...)
}

// Warn logs a warning message with optional key/value pairs
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(LevelWarn, msg, keyvals...)
}

// Error logs an error message with optional key/value pairs
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(LevelError, msg, keyvals...)
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, keyvals ...interface{}) {
	WithComponent("").Debug(msg, keyvals...)
}

// Info logs an info message using the default logger
func Info(msg string, keyvals ...interface{}) {
	WithComponent("").Info(msg, keyvals...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, keyvals ...interface{}) {
	WithComponent("").Warn(msg, keyvals...)
}

// Error logs an error message using the default logger
func Error(msg string, keyvals ...interface{}) {
	WithComponent("").Error(msg, keyvals...)
}

// SetOutput sets the output writer for the default logger (useful for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = &Logger{level: LevelDebug, logger: log.New(w, "", 0)}
		return
	}
	defaultLogger.logger.SetOutput(w)
}

// Close closes the default logger's file
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil && defaultLogger.file != nil {
		return defaultLogger.file.Close()
	}
	return nil
}
