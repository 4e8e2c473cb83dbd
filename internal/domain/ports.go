package domain

import (
	"context"
	"time"
)

// IssueSource provides the raw issues of the configured repository.
type IssueSource interface {
	// ListIssues returns every issue the source can see, unfiltered by label.
	ListIssues(ctx context.Context) ([]RawIssue, error)
}

// OutputSink persists the generated collections.
type OutputSink interface {
	// Render serializes the groups in one of the Format* encodings.
	Render(format string, groups []GroupOutput) ([]byte, error)

	// Write stores the groups in every configured format and returns the paths it wrote.
	// All formats are rendered before any file is touched, and each file is replaced atomically.
	Write(ctx context.Context, groups []GroupOutput) ([]string, error)
}

// RepositoryResolver detects the GitHub repository of a working directory.
type RepositoryResolver interface {
	// Resolve returns the owner and name of the origin remote's repository.
	Resolve(dir string) (owner, repo string, err error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration merged over the defaults.
	Load() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetConfigInfo returns information about the active config file.
	GetConfigInfo() ConfigInfo

	// InitConfig writes the default template. It refuses to overwrite unless force is set.
	InitConfig(force bool) (string, error)
}

// Logger records pipeline events.
// issue is the issue number, or 0 for run-level events.
type Logger interface {
	Debug(issue int, category, msg string)
	Info(issue int, category, msg string)
	Warn(issue int, category, msg string)
	Error(issue int, category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

// Debug does nothing.
func (NopLogger) Debug(int, string, string) {}

// Info does nothing.
func (NopLogger) Info(int, string, string) {}

// Warn does nothing.
func (NopLogger) Warn(int, string, string) {}

// Error does nothing.
func (NopLogger) Error(int, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
