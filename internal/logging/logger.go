// Package logging provides structured logging for the tray application.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog with the file/console routing used by ctrltick.
type Logger struct {
	zlog zerolog.Logger
	file *lumberjack.Logger // nil when file logging is off
}

// Config configures NewLogger.
type Config struct {
	// LogFile is the path to write logs (empty = no file logging).
	LogFile string

	// Console forces console output (--verbose). When false, console output
	// is still enabled if stderr is attached to a terminal.
	Console bool

	// Level is the minimum level written.
	Level zerolog.Level
}

// NewLogger creates a logger writing to a rotating file and, when running
// from a terminal, to stderr as well.
func NewLogger(cfg Config) *Logger {
	var writers []io.Writer
	var file *lumberjack.Logger

	if cfg.LogFile != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    5, // MB
			MaxBackups: 2,
			MaxAge:     30, // days
		}
		writers = append(writers, file)
	}

	if cfg.Console || term.IsTerminal(int(os.Stderr.Fd())) {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	l := New(output)
	l.file = file
	l.zlog = l.zlog.Level(cfg.Level)
	return l
}

// New creates a logger writing JSON lines to w.
func New(w io.Writer) *Logger {
	return &Logger{zlog: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("component", component).Logger(),
		file: l.file,
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
