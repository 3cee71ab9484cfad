// Package logger is a small leveled logger with key/value fields and
// size/age based file rotation. Console output is off by default so the
// terminal board is not disturbed.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key/value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level  // Minimum log level
	FilePath   string // Log file; empty disables file output
	MaxSize    int64  // Rotate once the file reaches this many bytes
	MaxAge     int    // Rotate once the file is older than this many days
	MaxBackups int    // Rotated files to keep
	Console    bool   // Also write to stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".ironboard", "logs", "ironboard.log")
	}

	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
	}
}

// sink is the shared output of a logger and every logger derived from it
type sink struct {
	mu      sync.Mutex
	config  Config
	file    *os.File
	opened  time.Time
	console io.Writer
}

// Logger writes leveled entries to its sink
type Logger struct {
	sink   *sink
	level  Level
	fields []Field
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// Init builds a logger from config and installs it as the global logger.
// A previously installed global logger is closed.
func Init(config Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	SetGlobal(l)
	return nil
}

// SetGlobal replaces the global logger, closing the previous one
func SetGlobal(l *Logger) {
	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()

	if prev != nil && (l == nil || prev.sink != l.sink) {
		_ = prev.Close()
	}
}

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	s := &sink{config: config}
	if config.Console {
		s.console = os.Stderr
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := s.openFile(); err != nil {
			return nil, err
		}
		if err := s.rotateIfNeeded(); err != nil {
			return nil, err
		}
	}

	return &Logger{sink: s, level: config.Level}, nil
}

// NewWriter creates a logger that writes to w only; used for tests and the API server
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{sink: &sink{console: w}, level: level}
}

func (s *sink) openFile() error {
	file, err := os.OpenFile(s.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.file = file
	s.opened = time.Now()
	if info, err := file.Stat(); err == nil {
		s.opened = info.ModTime()
	}
	return nil
}

// rotateIfNeeded rotates when the file is too large or too old. Callers hold s.mu or own s exclusively.
func (s *sink) rotateIfNeeded() error {
	if s.file == nil {
		return nil
	}

	info, err := s.file.Stat()
	if err != nil {
		return err
	}

	tooBig := s.config.MaxSize > 0 && info.Size() >= s.config.MaxSize
	tooOld := s.config.MaxAge > 0 && info.Size() > 0 &&
		time.Since(s.opened) > time.Duration(s.config.MaxAge)*24*time.Hour
	if !tooBig && !tooOld {
		return nil
	}
	return s.rotate()
}

func (s *sink) rotate() error {
	_ = s.file.Close()
	s.file = nil

	path := s.config.FilePath
	if s.config.MaxBackups > 0 {
		_ = os.Remove(fmt.Sprintf("%s.%d", path, s.config.MaxBackups))
		for i := s.config.MaxBackups - 1; i >= 1; i-- {
			_ = os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
		}
		if err := os.Rename(path, path+".1"); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := s.openFile(); err != nil {
		return err
	}
	s.opened = time.Now()
	return nil
}

func (s *sink) write(entry []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.rotateIfNeeded()

	if s.file != nil {
		_, _ = s.file.Write(entry)
	}
	if s.console != nil {
		_, _ = s.console.Write(entry)
	}
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// formatValue renders a field value, quoting it when it would be ambiguous
func formatValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case error:
		s = val.Error()
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprintf("%v", val)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if l == nil || level < l.level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(3); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString("] ")
	b.WriteString(level.String())
	b.WriteString(" ")
	b.WriteString(caller)
	b.WriteString(": ")
	b.WriteString(msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, group := range [][]Field{l.fields, fields} {
			for _, f := range group {
				b.WriteString(" ")
				b.WriteString(f.Key)
				b.WriteString("=")
				b.WriteString(formatValue(f.Value))
			}
		}
	}
	b.WriteString("\n")

	l.sink.write([]byte(b.String()))
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields ...Field) *Logger {
	if l == nil {
		return nil
	}
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{sink: l.sink, level: l.level, fields: merged}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) { l.entry(DEBUG, msg, fields) }

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) { l.entry(INFO, msg, fields) }

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) { l.entry(WARN, msg, fields) }

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) { l.entry(ERROR, msg, fields) }

// entry keeps the call depth identical for methods and package functions
func (l *Logger) entry(level Level, msg string, fields []Field) {
	l.log(level, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.sink.close()
}

// Global logger functions. They are no-ops until Init or SetGlobal is called.

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) { global().entry(DEBUG, msg, fields) }

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) { global().entry(INFO, msg, fields) }

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) { global().entry(WARN, msg, fields) }

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) { global().entry(ERROR, msg, fields) }

// With returns the global logger with preset fields, or nil when there is none
func With(fields ...Field) *Logger {
	return global().With(fields...)
}

// Close closes the global logger
func Close() error {
	return global().Close()
}
