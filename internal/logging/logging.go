// Package logging wraps slog with a JSON handler that writes to a rotating
// file when a log directory is configured and to stderr otherwise.
//
// All methods accept a nil *Logger: debug and info messages are then
// discarded while warnings and errors go to the default slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
}

// New builds the service logger. With an empty dir the output is stderr.
func New(level, dir string) *Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	var w io.Writer = os.Stderr
	file := ""
	if dir != "" {
		lj := &lumberjack.Logger{
			Filename: filepath.Join(dir, "airport_traffic.slog"),
			MaxSize:  64, // MB
			MaxAge:   14,
			Compress: true,
		}
		w, file = lj, lj.Filename
	}

	l := NewWithWriter(w, lvl)
	l.LogFile = file
	l.Info("logging started",
		slog.String("GOOS", runtime.GOOS),
		slog.String("GOARCH", runtime.GOARCH),
		slog.Int("NumCPUs", runtime.NumCPU()))
	return l
}

// NewWithWriter is used by tests to capture output.
func NewWithWriter(w io.Writer, lvl slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})),
		Start:  time.Now(),
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelInfo) {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}
