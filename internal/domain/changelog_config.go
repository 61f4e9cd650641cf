package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Defaults for ChangelogConfig.
const (
	DefaultRootGitHubURL = "https://api.github.com"
	DefaultDateFormat    = "2006-01-02"

	defaultWebURL = "https://github.com"
)

// quoteEscaper escapes double quotes inside quoted search qualifiers.
var quoteEscaper = strings.NewReplacer(`"`, `\"`)

// ChangelogConfig describes what to generate a changelog for.
// Fields are ordered to minimize memory padding.
type ChangelogConfig struct {
	Credentials      Credentials // Optional API credentials
	User             string      // Owner of the repository
	Repository       string
	NonGroupedLabel  string // Group name for issues without a matching label
	RootGitHubURL    string // API root, e.g. https://git.example.com/api/v3
	DateFormat       string // Go time layout used when IncludeDate is set
	Milestones       []string
	Labels           []string // Label filter; empty means no filter
	Concurrency      int      // Parallel search queries; 0 or 1 means sequential
	IncludeOpen      bool
	ShowContributors bool
	IncludeDate      bool
}

// NewChangelogConfig creates a ChangelogConfig with defaults applied.
// An empty milestone is not added.
func NewChangelogConfig(user, repository, milestone string, labels []string) *ChangelogConfig {
	cfg := &ChangelogConfig{
		User:          user,
		Repository:    repository,
		Labels:        labels,
		RootGitHubURL: DefaultRootGitHubURL,
		DateFormat:    DefaultDateFormat,
	}
	if milestone != "" {
		cfg.Milestones = []string{milestone}
	}
	return cfg
}

// Milestone returns the first milestone, or an empty string.
func (c *ChangelogConfig) Milestone() string {
	if len(c.Milestones) == 0 {
		return ""
	}
	return c.Milestones[0]
}

// Validate checks that the config is complete enough to query the API.
func (c *ChangelogConfig) Validate() error {
	if c.User == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidConfig)
	}
	if c.Repository == "" {
		return fmt.Errorf("%w: repository is required", ErrInvalidConfig)
	}
	if len(c.Milestones) == 0 {
		return fmt.Errorf("%w: at least one milestone is required", ErrInvalidConfig)
	}
	for _, m := range c.Milestones {
		if m == "" {
			return fmt.Errorf("%w: milestone cannot be empty", ErrInvalidConfig)
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (c *ChangelogConfig) IsValid() bool {
	return c.Validate() == nil
}

// QueryLabels returns the labels to query for. Without a label filter a
// single empty label is returned so that one unfiltered query is made.
func (c *ChangelogConfig) QueryLabels() []string {
	if len(c.Labels) == 0 {
		return []string{""}
	}
	return c.Labels
}

// IssuesQuery builds the search query for one milestone and label.
func (c *ChangelogConfig) IssuesQuery(milestone, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `milestone:"%s" repo:%s/%s`, quoteEscaper.Replace(milestone), c.User, c.Repository)
	if !c.IncludeOpen {
		b.WriteString(" state:closed")
	}
	if label != "" {
		fmt.Fprintf(&b, ` label:"%s"`, quoteEscaper.Replace(label))
	}
	return b.String()
}

// IssuesURL returns the search endpoint URL for one milestone and label.
func (c *ChangelogConfig) IssuesURL(milestone, label string) string {
	return fmt.Sprintf("%s/search/issues?q=%s", c.rootURL(), url.QueryEscape(c.IssuesQuery(milestone, label)))
}

// ContributorURL returns the profile page of a user on the web host that
// belongs to the API root: github.com for api.github.com, otherwise the
// host of the API root, e.g. https://git.example.com for a GitHub
// Enterprise root of https://git.example.com/api/v3.
func (c *ChangelogConfig) ContributorURL(user string) string {
	return c.webURL() + "/" + user
}

func (c *ChangelogConfig) webURL() string {
	u, err := url.Parse(c.rootURL())
	if err != nil || u.Host == "" {
		return defaultWebURL
	}
	if u.Host == "api.github.com" {
		return defaultWebURL
	}
	if host, ok := strings.CutPrefix(u.Host, "api."); ok {
		return u.Scheme + "://" + host
	}
	return u.Scheme + "://" + u.Host
}

func (c *ChangelogConfig) rootURL() string {
	if c.RootGitHubURL == "" {
		return DefaultRootGitHubURL
	}
	return strings.TrimRight(c.RootGitHubURL, "/")
}

// Title returns the document title: the first milestone, followed by the
// formatted date when IncludeDate is set.
func (c *ChangelogConfig) Title(now time.Time) string {
	if !c.IncludeDate {
		return c.Milestone()
	}
	layout := c.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	return fmt.Sprintf("%s - [%s]", c.Milestone(), now.Format(layout))
}
