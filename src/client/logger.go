package client

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is a log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel parses debug, info, warn or error
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes leveled messages to stderr and, optionally, a log file.
// Console lines are "LEVEL: message"; file lines carry timestamps.
type Logger struct {
	level   Level
	console *log.Logger
	fileLog *log.Logger
	file    *os.File
}

// NewLogger creates a console-only logger
func NewLogger(w io.Writer, level Level) *Logger {
	return &Logger{
		level:   level,
		console: log.New(w, "", 0),
	}
}

// OpenLogger creates a logger from config. --debug forces debug level.
func OpenLogger(w io.Writer, cfg LoggingConfig, debug bool) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, NewConfigError(err.Error())
	}
	if debug {
		level = LevelDebug
	}

	l := NewLogger(w, level)
	if cfg.File == "" {
		return l, nil
	}

	if err := EnsureFile(cfg.File); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to create log directory: %v", err))
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to open log file: %v", err))
	}
	l.file = f
	l.fileLog = log.New(f, "", log.LstdFlags)
	return l, nil
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	msg := level.String() + ": " + fmt.Sprintf(format, args...)
	l.console.Println(msg)
	if l.fileLog != nil {
		l.fileLog.Println(msg)
	}
}

// Debugf logs at debug level
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(LevelInfo, format, args...) }

// Warnf logs at warn level
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Close closes the log file, if one is open
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
