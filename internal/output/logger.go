package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// LogLevel represents the importance level of a log message
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON writes the level by name so JSON logs stay readable.
func (l LogLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON reads a level written by MarshalJSON.
func (l *LogLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	level, err := ParseLogLevel(name)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// ParseLogLevel maps a configuration string (case-insensitive) to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "fatal":
		return LogLevelFatal, nil
	}
	return LogLevelInfo, errors.ValidationError("log.level", s, "expected one of trace, debug, info, warn, error, fatal")
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// ParseLogFormat maps "text" or "json" to a LogFormat.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return LogFormatText, nil
	case "json":
		return LogFormatJSON, nil
	}
	return LogFormatText, errors.ValidationError("log.format", s, "expected text or json")
}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	Caller    string         `json:"caller,omitempty"`
}

// Logger handles structured logging with multiple outputs and formats.
// A Logger is handed to the components that log; nothing in this package
// keeps a process-wide instance.
type Logger struct {
	level         LogLevel
	format        LogFormat
	outputs       []io.Writer
	fields        map[string]any
	limits        Limits
	includeCaller bool
	timeFormat    string
}

// NewLogger creates a new structured logger writing text to stderr at INFO.
func NewLogger() *Logger {
	return &Logger{
		level:      LogLevelInfo,
		format:     LogFormatText,
		outputs:    []io.Writer{os.Stderr},
		fields:     make(map[string]any),
		limits:     DefaultLimits(),
		timeFormat: "15:04:05",
	}
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *Logger {
	return NewLogger().SetOutputs(io.Discard).SetLevel(LogLevelFatal + 1)
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.level = level
	return l
}

// Level returns the minimum level that is written.
func (l *Logger) Level() LogLevel {
	return l.level
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

// SetFormat sets the output format (text or JSON)
func (l *Logger) SetFormat(format LogFormat) *Logger {
	l.format = format
	return l
}

// SetLimits sets the truncation limits applied to JSON entries.
func (l *Logger) SetLimits(limits Limits) *Logger {
	l.limits = limits
	return l
}

// AddOutput adds an output writer for logs
func (l *Logger) AddOutput(w io.Writer) *Logger {
	l.outputs = append(l.outputs, w)
	return l
}

// SetOutputs replaces all output writers
func (l *Logger) SetOutputs(outputs ...io.Writer) *Logger {
	l.outputs = outputs
	return l
}

// WithField returns a child logger that adds key to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	child := *l
	child.fields = make(map[string]any, len(l.fields)+1)
	maps.Copy(child.fields, l.fields)
	child.fields[key] = value
	return &child
}

// WithFields adds multiple fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newLogger := l
	for k, v := range fields {
		newLogger = newLogger.WithField(k, v)
	}
	return newLogger
}

// WithError adds an error field
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// EnableCaller includes caller information in log entries
func (l *Logger) EnableCaller() *Logger {
	l.includeCaller = true
	return l
}

// DisableCaller removes caller information from log entries
func (l *Logger) DisableCaller() *Logger {
	l.includeCaller = false
	return l
}

// SetTimeFormat sets the timestamp layout used by the text format
func (l *Logger) SetTimeFormat(format string) *Logger {
	l.timeFormat = format
	return l
}

func (l *Logger) log(level LogLevel, message string, fields ...map[string]any) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(map[string]any),
	}

	maps.Copy(entry.Fields, l.fields)
	for _, fieldMap := range fields {
		maps.Copy(entry.Fields, fieldMap)
	}

	if l.includeCaller {
		if pc, file, line, ok := runtime.Caller(2); ok {
			funcName := runtime.FuncForPC(pc).Name()
			entry.Caller = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, filepath.Base(funcName))
		}
	}

	if len(entry.Fields) == 0 {
		entry.Fields = nil
	}

	l.writeEntry(entry)
}

func (l *Logger) writeEntry(entry LogEntry) {
	var out string

	switch l.format {
	case LogFormatJSON:
		out = l.formatJSONEntry(entry)
	default:
		out = l.formatTextEntry(entry)
	}

	for _, w := range l.outputs {
		fmt.Fprint(w, out)
	}
}

func (l *Logger) formatJSONEntry(entry LogEntry) string {
	entry.Message = l.limits.truncateString(entry.Message)
	if entry.Fields != nil {
		if limited, ok := l.limits.Apply(entry.Fields, 1).(map[string]any); ok {
			entry.Fields = limited
		}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":"Failed to marshal log entry: %v"}`+"\n", err)
	}
	return string(data) + "\n"
}

// formatTextEntry formats a log entry as a single human-readable line
func (l *Logger) formatTextEntry(entry LogEntry) string {
	parts := []string{
		entry.Timestamp.Format(l.timeFormat),
		fmt.Sprintf("[%s]", entry.Level),
	}

	if entry.Caller != "" {
		parts = append(parts, fmt.Sprintf("(%s)", entry.Caller))
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		parts = append(parts, formatFields(entry.Fields))
	}

	return strings.Join(parts, " ") + "\n"
}

// formatFields renders fields as [k=v ...] sorted by key
func formatFields(fields map[string]any) string {
	keys := slices.Sorted(maps.Keys(fields))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return "[" + strings.Join(pairs, " ") + "]"
}

// Trace logs a trace message
func (l *Logger) Trace(message string, fields ...map[string]any) {
	l.log(LogLevelTrace, message, fields...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.log(LogLevelDebug, message, fields...)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]any) {
	l.log(LogLevelInfo, message, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.log(LogLevelWarn, message, fields...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...map[string]any) {
	l.log(LogLevelError, message, fields...)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(message string, fields ...map[string]any) {
	l.log(LogLevelFatal, message, fields...)
	os.Exit(1)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// FileOptions controls rotation of a file-backed logger.
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// CreateFileLogger creates a logger that writes to a size-rotated file.
// The returned io.Closer releases the file.
func CreateFileLogger(filename string, level LogLevel, format LogFormat, opts FileOptions) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, errors.PermissionDenied, "Cannot create log directory").
			WithValue(filepath.Dir(filename))
	}

	file := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	logger := NewLogger().
		SetLevel(level).
		SetFormat(format).
		SetTimeFormat(time.RFC3339).
		SetOutputs(file)

	return logger, file, nil
}
