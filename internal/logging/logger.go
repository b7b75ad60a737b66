// Package logging provides the leveled logger used across comcut. Records go
// to an append-only log file and, optionally, to the console. Every record
// carries the run's short id so interleaved runs stay separable in one file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/comcut/internal/config"
	"github.com/backmassage/comcut/internal/term"
)

// RunField is the record field holding the short run id.
const RunField = "run"

// Logger provides leveled logging over a zerolog backend with an optional
// file sink.
type Logger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	file    *os.File
	verbose bool
}

// NewLogger configures terminal colors from cfg, opens cfg.LogFile for
// appending when set, and tags every record with the first six characters of
// runID. Call Close() when done.
func NewLogger(cfg *config.Config, runID string) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{verbose: cfg.Verbose}
	var sinks []io.Writer

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		sinks = append(sinks, zerolog.ConsoleWriter{
			Out:        f,
			NoColor:    true,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}
	if cfg.ConsoleLogging || cfg.LogFile == "" {
		sinks = append(sinks, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    !term.Enabled(),
			TimeFormat: time.TimeOnly,
		})
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	l.zl = zerolog.New(zerolog.MultiLevelWriter(sinks...)).
		Level(level).
		With().
		Timestamp().
		Str(RunField, ShortID(runID)).
		Logger()
	return l, nil
}

// ShortID returns the prefix of a run id used in log records and staging
// file names.
func ShortID(runID string) string {
	if len(runID) > 6 {
		return runID[:6]
	}
	return runID
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Verbose reports whether debug records are emitted.
func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) emit(e *zerolog.Event, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Msg(fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(l.zl.Info(), format, args)
}

// Success logs at INFO level with ok=true, marking a completed step.
func (l *Logger) Success(format string, args ...interface{}) {
	l.emit(l.zl.Info().Bool("ok", true), format, args)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(l.zl.Warn(), format, args)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(l.zl.Error(), format, args)
}

// Debug logs at DEBUG level; dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(l.zl.Debug(), format, args)
}

// Fields logs msg at INFO level with structured key/value pairs appended.
func (l *Logger) Fields(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info().Fields(fields).Msg(msg)
}
