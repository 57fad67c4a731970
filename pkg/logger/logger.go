// Package logger provides a leveled logging interface for the application.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the logging interface used across the application.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type leveledLogger struct {
	level Level
	mu    sync.RWMutex
	out   *log.Logger
	err   *log.Logger
}

// New creates a logger whose minimum level comes from the LOG_LEVEL
// environment variable (defaults to info).
func New() Logger {
	return &leveledLogger{
		level: ParseLevel(os.Getenv("LOG_LEVEL")),
		out:   log.New(os.Stdout, "", log.LstdFlags),
		err:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// ParseLevel converts a string log level to a Level, defaulting to info.
func ParseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *leveledLogger) logf(level Level, prefix, format string, v ...interface{}) {
	l.mu.RLock()
	min := l.level
	l.mu.RUnlock()
	if level < min {
		return
	}

	target := l.out
	if level >= LevelError {
		target = l.err
	}
	target.Output(3, prefix+fmt.Sprintf(format, v...))
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logf(LevelDebug, "[DEBUG] ", format, v...)
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, "[INFO] ", format, v...)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logf(LevelWarn, "[WARN] ", format, v...)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, "[ERROR] ", format, v...)
}

func (l *leveledLogger) Fatalf(format string, v ...interface{}) {
	l.logf(LevelError, "[FATAL] ", format, v...)
	os.Exit(1)
}
