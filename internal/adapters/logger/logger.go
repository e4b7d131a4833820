// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/vend/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing human-readable records to stderr.
func New() *Logger {
	return NewWriter(os.Stderr)
}

// NewWriter creates a Logger writing to w at info level.
func NewWriter(w io.Writer) *Logger {
	l := &Logger{level: new(slog.LevelVar)}
	l.logger = l.newLogger(w)
	return l
}

func (l *Logger) newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level}))
}

// SetOutput updates the logger's output destination.
// Records already being written finish on the old destination.
func (l *Logger) SetOutput(w io.Writer) {
	next := l.newLogger(w)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = next
}

// SetLevel changes the minimum level of emitted records.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs a failed operation.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
