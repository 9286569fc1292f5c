// =============================================================================
// PDF to XLSX Converter - Logging
// =============================================================================
//
// This module provides the logger used by every other package. Log lines
// are appended to one file per day (<log_dir>/YYYYMMDD.log, UTC) so that a
// batch run leaves one entry per processed document.
//
// =============================================================================

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger is the logging interface used by the converter and the parser.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// Success records a successful outcome at info level.
	Success(msg string, args ...interface{})
}

// =============================================================================
// SLOG ADAPTER
// =============================================================================

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// New wraps an existing slog logger. Close is a no-op on the result.
func New(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewDaily opens today's log file in dir, creating dir when needed.
// With debug set, the level drops to debug and every line is also
// written to stderr.
func NewDaily(dir string, debug bool) (*SlogLogger, error) {
	return newDaily(dir, debug, time.Now().UTC(), os.Stderr)
}

func newDaily(dir string, debug bool, now time.Time, console io.Writer) (*SlogLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := DailyFileName(dir, now)
	_, statErr := os.Stat(path)
	isNewFile := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	var out io.Writer = file
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
		if console != nil {
			out = io.MultiWriter(file, console)
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	if isNewFile {
		logger.Info("New Log File Started.")
	}

	l := New(logger)
	l.closer = file
	return l, nil
}

// DailyFileName returns the log file path for the given day.
func DailyFileName(dir string, day time.Time) string {
	return filepath.Join(dir, day.Format("20060102")+".log")
}

// With returns a logger that adds the given attributes to every line.
func (l *SlogLogger) With(args ...interface{}) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...), closer: l.closer}
}

// Close closes the underlying log file, if any.
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *SlogLogger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, false, msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, false, msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, false, msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, false, msg, args...)
}

func (l *SlogLogger) Success(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, true, msg, args...)
}

func (l *SlogLogger) log(level slog.Level, success bool, msg string, args ...interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level, msg, slog.Bool("success", success))
}

// =============================================================================
// NOP LOGGER
// =============================================================================

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Success(string, ...interface{}) {}
