// Package logger provides the process-wide structured logger.
//
// It wraps log/slog with a runtime-adjustable level and a choice of text
// or JSON output. Commands configure it once at startup from the loaded
// configuration; everything else uses the package-level functions.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu       sync.RWMutex
	levelVar = new(slog.LevelVar)
	output   io.Writer = os.Stderr
	slogger            = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
)

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// Init configures the logger. Output can be "stdout", "stderr", or a
// file path; an empty output keeps the current writer.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
	}

	levelVar.Set(level)

	opts := &slog.HandlerOptions{Level: levelVar}
	if strings.ToLower(cfg.Format) == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, opts))
	} else {
		slogger = slog.New(slog.NewTextHandler(output, opts))
	}
	return nil
}

// SetLevel changes the log level at runtime.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Default returns the current *slog.Logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// With returns a logger with the given attributes attached.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Default().Error(msg, args...) }
