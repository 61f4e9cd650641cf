// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIssueClient is a test double for domain.IssueClient.
// Responses are keyed by URL. Unknown URLs return an empty last page.
// Fields are ordered to minimize memory padding.
type MockIssueClient struct {
	Responses map[string]*domain.IssueClientResponse
	Errors    map[string]error
	Err       error // Returned for every call when set
	Calls     []string
	Creds     []domain.Credentials
	mu        sync.Mutex
}

// NewMockIssueClient creates a new MockIssueClient with initialized maps.
func NewMockIssueClient() *MockIssueClient {
	return &MockIssueClient{
		Responses: make(map[string]*domain.IssueClientResponse),
		Errors:    make(map[string]error),
	}
}

// Ensure MockIssueClient implements domain.IssueClient interface.
var _ domain.IssueClient = (*MockIssueClient)(nil)

// Execute records the call and returns the configured response.
func (m *MockIssueClient) Execute(_ context.Context, url string, creds domain.Credentials) (*domain.IssueClientResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, url)
	m.Creds = append(m.Creds, creds)
	if m.Err != nil {
		return nil, m.Err
	}
	if err, ok := m.Errors[url]; ok {
		return nil, err
	}
	if resp, ok := m.Responses[url]; ok {
		return resp, nil
	}
	return &domain.IssueClientResponse{}, nil
}

// CallCount returns the number of Execute calls.
func (m *MockIssueClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockOutput is a test double for domain.ChangelogOutput.
// Fields are ordered to minimize memory padding.
type MockOutput struct {
	Err   error
	Lines []string
}

// Ensure MockOutput implements domain.ChangelogOutput interface.
var _ domain.ChangelogOutput = (*MockOutput)(nil)

// WriteLines records the lines and returns the configured error.
func (m *MockOutput) WriteLines(lines ...string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Lines = append(m.Lines, lines...)
	return nil
}

// String returns the recorded lines joined by newlines.
func (m *MockOutput) String() string {
	return strings.Join(m.Lines, "\n")
}

// MockRemoteResolver is a test double for domain.RemoteResolver.
// Fields are ordered to minimize memory padding.
type MockRemoteResolver struct {
	Err    error
	Owner  string
	Repo   string
	Dirs   []string
	Called bool
}

// Ensure MockRemoteResolver implements domain.RemoteResolver interface.
var _ domain.RemoteResolver = (*MockRemoteResolver)(nil)

// ResolveRepository records the call and returns the configured values.
func (m *MockRemoteResolver) ResolveRepository(dir string) (string, string, error) {
	m.Called = true
	m.Dirs = append(m.Dirs, dir)
	if m.Err != nil {
		return "", "", m.Err
	}
	return m.Owner, m.Repo, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
// Fields are ordered to minimize memory padding.
type MockConfigLoader struct {
	Config   *domain.Config
	LoadErr  error
	LastPath string
}

// NewMockConfigLoader creates a new MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load(path string) (*domain.Config, error) {
	m.LastPath = path
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	Info       domain.ConfigInfo
	InitPath   string
	InitData   domain.ConfigTemplateData
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		Info: domain.ConfigInfo{
			Path:   filepath.Join("/test", domain.ConfigFileName),
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// ConfigInfo returns the configured config info.
func (m *MockConfigManager) ConfigInfo(_ string) domain.ConfigInfo {
	return m.Info
}

// InitConfig records the call and returns the configured error.
func (m *MockConfigManager) InitConfig(path string, data domain.ConfigTemplateData) (string, error) {
	m.InitCalled = true
	m.InitData = data
	if m.InitErr != nil {
		return "", m.InitErr
	}
	if path == "" {
		path = m.Info.Path
	}
	m.InitPath = path
	return path, nil
}

// MockLogger is a test double for domain.Logger that records messages.
type MockLogger struct {
	Entries []string
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] [%s] %s", level, category, msg))
}

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string, _ ...any) { m.record("DEBUG", category, msg) }

// Info records an info message.
func (m *MockLogger) Info(category, msg string, _ ...any) { m.record("INFO", category, msg) }

// Warn records a warning.
func (m *MockLogger) Warn(category, msg string, _ ...any) { m.record("WARN", category, msg) }

// Error records an error.
func (m *MockLogger) Error(category, msg string, _ ...any) { m.record("ERROR", category, msg) }
