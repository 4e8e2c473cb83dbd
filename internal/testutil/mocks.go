// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/linkgen/internal/domain"
)

// MockClock is a test double for domain.Clock.
// Each call to Now advances the time by Step.
type MockClock struct {
	NowTime time.Time
	Step    time.Duration
	mu      sync.Mutex
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.NowTime
	m.NowTime = m.NowTime.Add(m.Step)
	return now
}

// MockIssueSource is a test double for domain.IssueSource.
type MockIssueSource struct {
	ListErr error
	Issues  []domain.RawIssue
	Calls   int
}

// Ensure MockIssueSource implements domain.IssueSource interface.
var _ domain.IssueSource = (*MockIssueSource)(nil)

// ListIssues returns the configured issues or error.
func (m *MockIssueSource) ListIssues(_ context.Context) ([]domain.RawIssue, error) {
	m.Calls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Issues, nil
}

// MockOutputSink is a test double for domain.OutputSink.
// Fields are ordered to minimize memory padding.
type MockOutputSink struct {
	WriteErr  error
	RenderErr error
	Written   []domain.GroupOutput
	Paths     []string
	Writes    int
}

// Ensure MockOutputSink implements domain.OutputSink interface.
var _ domain.OutputSink = (*MockOutputSink)(nil)

// Render returns a short textual summary of the groups.
func (m *MockOutputSink) Render(format string, groups []domain.GroupOutput) ([]byte, error) {
	if m.RenderErr != nil {
		return nil, m.RenderErr
	}
	return []byte(fmt.Sprintf("%s:%d", format, len(groups))), nil
}

// Write records the groups.
func (m *MockOutputSink) Write(_ context.Context, groups []domain.GroupOutput) ([]string, error) {
	m.Writes++
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	m.Written = groups
	return m.Paths, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	ConfigInfo domain.ConfigInfo
	InitForce  bool
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ConfigInfo: domain.ConfigInfo{
			Path:   "/test/site/linkgen.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetConfigInfo returns the configured config info.
func (m *MockConfigManager) GetConfigInfo() domain.ConfigInfo {
	return m.ConfigInfo
}

// InitConfig records the call and returns the configured error.
func (m *MockConfigManager) InitConfig(force bool) (string, error) {
	m.InitCalled = true
	m.InitForce = force
	return m.ConfigInfo.Path, m.InitErr
}

// LogEntry is a single entry recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	Issue    int
}

// MockLogger is a test double for domain.Logger that records entries.
// It is safe for concurrent use.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level string, issue int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Issue: issue, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(issue int, category, msg string) { m.record("DEBUG", issue, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(issue int, category, msg string) { m.record("INFO", issue, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(issue int, category, msg string) { m.record("WARN", issue, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(issue int, category, msg string) { m.record("ERROR", issue, category, msg) }

// ByLevel returns the recorded entries with the given level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
