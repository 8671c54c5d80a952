// Package logger wraps charmbracelet/log for diagnostics written to stderr.
package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// loggerImpl implements Logger using the charm logger.
type loggerImpl struct {
	charmLogger *charmlog.Logger
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) { l.charmLogger.Debug(msg, keyvals...) }
func (l *loggerImpl) Info(msg string, keyvals ...any)  { l.charmLogger.Info(msg, keyvals...) }
func (l *loggerImpl) Warn(msg string, keyvals ...any)  { l.charmLogger.Warn(msg, keyvals...) }
func (l *loggerImpl) Error(msg string, keyvals ...any) { l.charmLogger.Error(msg, keyvals...) }

type Config struct {
	Level  string
	Output io.Writer
	JSON   bool
}

var defaultLogger Logger = New(&Config{Level: "warn", Output: os.Stderr})

// ParseLevel maps a config level name to a charm level. Unknown names map
// to warn.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

// New creates a logger from cfg.
func New(cfg *Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "exsel",
		Level:           ParseLevel(cfg.Level),
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return &loggerImpl{charmLogger: l}
}

// Init replaces the package default logger.
func Init(cfg *Config) {
	defaultLogger = New(cfg)
}

func Debug(msg string, keyvals ...any) { defaultLogger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { defaultLogger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { defaultLogger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { defaultLogger.Error(msg, keyvals...) }
