// Package logging provides line-oriented logging for linkgen.
// Entries go to a console writer (normally stderr) and, when configured,
// are appended to a log file as well.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/linkgen/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog levels with console and optional file output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	console  io.Writer
	file     *os.File
	now      func() time.Time
	filePath string
	mu       sync.Mutex
	level    slog.Level
}

// New creates a new Logger.
// console may be nil to disable console output; filePath may be empty to disable file output.
func New(console io.Writer, filePath string, level slog.Level) *Logger {
	return &Logger{
		console:  console,
		filePath: filePath,
		level:    level,
		now:      time.Now,
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file. Caller must hold l.mu.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.filePath), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file if it was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry in the specified format.
// Format: [2025-12-30 09:32:51] [WARN] [issue-12] [pipeline] message
func formatLog(t time.Time, level slog.Level, issue int, category, msg string) string {
	levelStr := levelToString(level)
	scope := "global"
	if issue > 0 {
		scope = fmt.Sprintf("issue-%d", issue)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelStr,
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to the console and the log file.
// Workers log concurrently, so writes are serialized.
func (l *Logger) log(level slog.Level, issue int, category, msg string) {
	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(l.now(), level, issue, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		_, _ = io.WriteString(l.console, entry)
	}
	if l.filePath != "" {
		if f, err := l.ensureFile(); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(issue int, category, msg string) {
	l.log(slog.LevelInfo, issue, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(issue int, category, msg string) {
	l.log(slog.LevelDebug, issue, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(issue int, category, msg string) {
	l.log(slog.LevelWarn, issue, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(issue int, category, msg string) {
	l.log(slog.LevelError, issue, category, msg)
}
