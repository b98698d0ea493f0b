// Package logger provides structured JSON logging for the dashboard service,
// backed by logrus, with service, version and execution id on every entry.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
	LevelFatal LogLevel = "FATAL"
)

// HTTPContext contains HTTP request/response information
type HTTPContext struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	Query      string `json:"query"`
	UserAgent  string `json:"user_agent"`
	RemoteIP   string `json:"remote_ip"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id"`
}

// ErrorContext contains error information
type ErrorContext struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PerformanceContext contains timing metrics
type PerformanceContext struct {
	Duration   time.Duration `json:"duration"`
	DurationMs float64       `json:"duration_ms"`
}

// LogContext holds additional context for logging
type LogContext struct {
	HTTP        *HTTPContext
	Error       *ErrorContext
	Performance *PerformanceContext
	Fields      map[string]interface{}
}

// Config holds the logger configuration
type Config struct {
	Service      string    // Service name
	Version      string    // Application version
	Environment  string    // Environment (dev, staging, prod)
	LogDir       string    // Optional directory for a daily log file, in addition to Output
	LogLevel     LogLevel  // Minimum log level to process
	EnableCaller bool      // Whether to capture caller information
	ExecutionID  string    // Unique ID for this process run
	Output       io.Writer // Defaults to stdout
}

// Logger is the main logger instance
type Logger struct {
	config      Config
	base        *logrus.Logger
	entry       *logrus.Entry
	file        *os.File
	mu          sync.Mutex
	ExecutionID string
}

// NewLogger creates a new Logger instance
func NewLogger(config Config) *Logger {
	if config.LogLevel == "" {
		config.LogLevel = LevelInfo
	}
	if config.ExecutionID == "" {
		config.ExecutionID = uuid.New().String()
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "@timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	base.SetLevel(toLogrus(config.LogLevel))

	l := &Logger{config: config, base: base, ExecutionID: config.ExecutionID}

	out := config.Output
	if config.LogDir != "" {
		if f, err := openLogFile(config.LogDir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			l.file = f
			out = io.MultiWriter(config.Output, f)
		}
	}
	base.SetOutput(out)

	hostname, _ := os.Hostname()
	l.entry = base.WithFields(logrus.Fields{
		"service":     config.Service,
		"version":     config.Version,
		"environment": config.Environment,
		"hostname":    hostname,
		"pid":         os.Getpid(),
		"exec_id":     config.ExecutionID,
	})

	return l
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	name := fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02"))
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func toLogrus(level LogLevel) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	case LevelFatal:
		return logrus.FatalLevel
	}
	return logrus.InfoLevel
}

// ParseLevel maps a LOG_LEVEL value to a LogLevel, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	switch LogLevel(s) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return LogLevel(s)
	}
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// createEntry creates a base log entry with common fields
func (l *Logger) createEntry(fields map[string]interface{}) *logrus.Entry {
	entry := l.entry.WithField("id", uuid.New().String())
	if len(fields) > 0 {
		entry = entry.WithField("fields", fields)
	}

	// Capture caller information if enabled
	if l.config.EnableCaller {
		if pc, file, line, ok := runtime.Caller(2); ok {
			caller := map[string]interface{}{"file": file, "line": line}
			if fn := runtime.FuncForPC(pc); fn != nil {
				caller["function"] = fn.Name()
			}
			entry = entry.WithField("caller", caller)
		}
	}
	return entry
}

func firstFields(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

func errorContext(err error) *ErrorContext {
	if err == nil {
		return nil
	}
	return &ErrorContext{Type: fmt.Sprintf("%T", err), Message: err.Error()}
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.createEntry(firstFields(fields)).Debug(message)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.createEntry(firstFields(fields)).Info(message)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.createEntry(firstFields(fields)).Warn(message)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...map[string]interface{}) {
	entry := l.createEntry(firstFields(fields))
	if ec := errorContext(err); ec != nil {
		entry = entry.WithField("error", ec)
	}
	entry.Error(message)
}

// Fatal logs a fatal message. It does not exit the process.
func (l *Logger) Fatal(message string, err error, fields ...map[string]interface{}) {
	entry := l.createEntry(firstFields(fields))
	if ec := errorContext(err); ec != nil {
		entry = entry.WithField("error", ec)
	}
	entry.Log(logrus.FatalLevel, message)
}

// WithContext logs with additional context
func (l *Logger) WithContext(level LogLevel, message string, ctx LogContext) {
	entry := l.createEntry(ctx.Fields)
	if ctx.HTTP != nil {
		entry = entry.WithField("http", ctx.HTTP)
	}
	if ctx.Error != nil {
		entry = entry.WithField("error", ctx.Error)
	}
	if ctx.Performance != nil {
		entry = entry.WithField("performance", ctx.Performance)
	}
	entry.Log(toLogrus(level), message)
}

// Close releases the log file, when one was opened
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
