package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"nagios-autothreshold/src/models"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// ParseLevel maps a config string to a Level. Unknown values mean INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarning
	case "ERROR":
		return LevelError
	case "CRITICAL":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// -----------------------------------------------------------------------------

// Logger provides named, leveled logging
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
	exit   func(int)
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger writing to stderr. config may be a
// *models.MConfig, whose LogLevel sets the threshold; anything else means INFO.
func NewLogger(config interface{}, name string) *Logger {
	return NewLoggerTo(os.Stderr, config, name)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer, config interface{}, name string) *Logger {
	level := LevelInfo
	if cfg, ok := config.(*models.MConfig); ok && cfg != nil {
		level = ParseLevel(cfg.LogLevel)
	}
	return &Logger{
		name:   name,
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
		exit:   os.Exit,
	}
}

// -----------------------------------------------------------------------------

// Named returns a logger sharing this one's output and level under a new name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, level: l.level, logger: l.logger, exit: l.exit}
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s: %s", l.name, levelNames[level], msg)
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logf(LevelWarning, format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logf(LevelCritical, format, args...)
	l.exit(1)
}
