package domain

import (
	"context"
	"time"
)

// IssueClient queries the issue-search API.
type IssueClient interface {
	// Execute fetches one page of search results from url.
	// creds may be nil for anonymous requests.
	Execute(ctx context.Context, url string, creds Credentials) (*IssueClientResponse, error)
}

// IssueClientResponse is one page of search results.
// Fields are ordered to minimize memory padding.
type IssueClientResponse struct {
	NextURL string // URL of the next page, empty on the last page
	Items   []IssueRecord
}

// HasNextPage reports whether another page is available.
func (r *IssueClientResponse) HasNextPage() bool {
	return r.NextURL != ""
}

// ChangelogOutput receives the rendered changelog.
type ChangelogOutput interface {
	// WriteLines writes the lines, each terminated by a newline.
	WriteLines(lines ...string) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load reads the config file at path. An empty path selects ConfigFileName
	// in the working directory, and a missing default file yields the default
	// config. A missing explicit path returns ErrConfigNotFound.
	Load(path string) (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// ConfigInfo returns information about the config file at path.
	// An empty path selects the default file.
	ConfigInfo(path string) ConfigInfo

	// InitConfig writes the rendered template to path.
	// Returns ErrConfigExists when the file already exists.
	InitConfig(path string, data ConfigTemplateData) (string, error)
}

// ConfigInfo holds information about a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// RemoteResolver finds the GitHub repository a working directory belongs to.
type RemoteResolver interface {
	// ResolveRepository returns the owner and name of the repository that the
	// origin remote of the enclosing git repository points to.
	ResolveRepository(dir string) (owner, repo string, err error)
}

// Logger provides leveled logging grouped by category.
type Logger interface {
	// Debug logs a debug message with optional key/value pairs.
	Debug(category, msg string, args ...any)

	// Info logs an info message with optional key/value pairs.
	Info(category, msg string, args ...any)

	// Warn logs a warning with optional key/value pairs.
	Warn(category, msg string, args ...any)

	// Error logs an error with optional key/value pairs.
	Error(category, msg string, args ...any)
}

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
