// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured metadata, such as zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	level    *slog.LevelVar
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing text records to stderr at info level.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}, output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and text records.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel sets the minimum level that is written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// rebuild must be called with mu held for writing.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = slog.NewTextHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error. In text mode the error chain is printed as a cause list.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the error chain. zerr errors contribute their own
// message and metadata; the first standard error ends the walk with its full text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}
		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

func formatErrorEntries(entries []errorEntry) string {
	var lines []string
	for i, e := range entries {
		msg := e.message + formatMetadata(e.metadata)
		parts := strings.Split(msg, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    -> "+parts[0])
		for _, p := range parts[1:] {
			lines = append(lines, "       "+p)
		}
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any) string {
	if len(md) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(md))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return " (" + strings.Join(pairs, ", ") + ")"
}
