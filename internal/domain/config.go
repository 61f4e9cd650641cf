package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config file names and defaults.
const (
	ConfigFileName  = ".changelog-generator.toml" // Config file looked up in the working directory
	DefaultLogLevel = "warn"
)

// Config represents the contents of a config file.
// Fields are ordered to minimize memory padding.
type Config struct {
	Projects       map[string]ProjectConfig `toml:"projects" yaml:"projects"`
	DefaultProject string                   `toml:"default_project,omitempty" yaml:"default_project,omitempty"`
	Path           string                   `toml:"-" yaml:"-"` // File the config was loaded from
	Warnings       []string                 `toml:"-" yaml:"-"`
	Log            LogConfig                `toml:"log" yaml:"log"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty" yaml:"level,omitempty"` // Log level: debug, info, warn, error
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`   // Log file appended to besides stderr
}

// ProjectConfig holds the settings of one [projects.<name>] section.
// Fields are ordered to minimize memory padding.
type ProjectConfig struct {
	User             string   `toml:"user,omitempty" yaml:"user,omitempty"`
	Repository       string   `toml:"repository,omitempty" yaml:"repository,omitempty"`
	NonGroupedLabel  string   `toml:"non_grouped_label,omitempty" yaml:"non_grouped_label,omitempty"`
	RootGitHubURL    string   `toml:"root_github_url,omitempty" yaml:"root_github_url,omitempty"`
	DateFormat       string   `toml:"date_format,omitempty" yaml:"date_format,omitempty"`
	WriteStrategy    string   `toml:"write_strategy,omitempty" yaml:"write_strategy,omitempty"` // replace, append or prepend for file output
	Milestones       []string `toml:"milestones,omitempty" yaml:"milestones,omitempty"`
	Labels           []string `toml:"labels,omitempty" yaml:"labels,omitempty"`
	Concurrency      int      `toml:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	IncludeOpen      bool     `toml:"include_open,omitempty" yaml:"include_open,omitempty"`
	ShowContributors bool     `toml:"show_contributors,omitempty" yaml:"show_contributors,omitempty"`
	IncludeDate      bool     `toml:"include_date,omitempty" yaml:"include_date,omitempty"`
}

// NewDefaultConfig returns a Config with default values and no projects.
func NewDefaultConfig() *Config {
	return &Config{
		Projects: make(map[string]ProjectConfig),
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ProjectNames returns the configured project names sorted alphabetically.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Project returns the named project. An empty name selects the default
// project, or the first project when no default is set.
func (c *Config) Project(name string) (string, ProjectConfig, error) {
	if len(c.Projects) == 0 {
		return "", ProjectConfig{}, ErrConfigEmpty
	}
	if name == "" {
		name = c.DefaultProject
	}
	if name == "" {
		name = c.ProjectNames()[0]
	}
	p, ok := c.Projects[name]
	if !ok {
		return "", ProjectConfig{}, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return name, p, nil
}

// ChangelogConfig converts the project settings into a ChangelogConfig.
func (p ProjectConfig) ChangelogConfig() *ChangelogConfig {
	cfg := NewChangelogConfig(p.User, p.Repository, "", append([]string(nil), p.Labels...))
	cfg.Milestones = append([]string(nil), p.Milestones...)
	cfg.NonGroupedLabel = p.NonGroupedLabel
	cfg.Concurrency = p.Concurrency
	cfg.IncludeOpen = p.IncludeOpen
	cfg.ShowContributors = p.ShowContributors
	cfg.IncludeDate = p.IncludeDate
	if p.RootGitHubURL != "" {
		cfg.RootGitHubURL = p.RootGitHubURL
	}
	if p.DateFormat != "" {
		cfg.DateFormat = p.DateFormat
	}
	return cfg
}

// ProjectConfigFrom converts a ChangelogConfig back into project settings.
// Credentials are never written to config files.
func ProjectConfigFrom(cfg *ChangelogConfig) ProjectConfig {
	p := ProjectConfig{
		User:             cfg.User,
		Repository:       cfg.Repository,
		NonGroupedLabel:  cfg.NonGroupedLabel,
		Milestones:       cfg.Milestones,
		Labels:           cfg.Labels,
		Concurrency:      cfg.Concurrency,
		IncludeOpen:      cfg.IncludeOpen,
		ShowContributors: cfg.ShowContributors,
		IncludeDate:      cfg.IncludeDate,
	}
	if cfg.RootGitHubURL != DefaultRootGitHubURL {
		p.RootGitHubURL = cfg.RootGitHubURL
	}
	if cfg.DateFormat != DefaultDateFormat {
		p.DateFormat = cfg.DateFormat
	}
	return p
}

// ConfigTemplateData fills the placeholders of the config template.
type ConfigTemplateData struct {
	Project    string
	User       string
	Repository string
	LogLevel   string
}

// RenderConfigTemplate renders the commented config file template.
func RenderConfigTemplate(data ConfigTemplateData) string {
	if data.Project == "" {
		data.Project = "default"
	}
	if data.LogLevel == "" {
		data.LogLevel = DefaultLogLevel
	}

	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

// ConfigOverrides holds values given on the command line.
// A nil field is not set and keeps the value from the config file.
// Fields are ordered to minimize memory padding.
type ConfigOverrides struct {
	User             *string
	Repository       *string
	NonGroupedLabel  *string
	RootGitHubURL    *string
	DateFormat       *string
	Concurrency      *int
	IncludeOpen      *bool
	ShowContributors *bool
	IncludeDate      *bool
	Milestones       []string // nil = not set
	Labels           []string // nil = not set
}

// Apply writes the set overrides into cfg.
func (o ConfigOverrides) Apply(cfg *ChangelogConfig) {
	if o.User != nil {
		cfg.User = *o.User
	}
	if o.Repository != nil {
		cfg.Repository = *o.Repository
	}
	if o.NonGroupedLabel != nil {
		cfg.NonGroupedLabel = *o.NonGroupedLabel
	}
	if o.RootGitHubURL != nil {
		cfg.RootGitHubURL = *o.RootGitHubURL
	}
	if o.DateFormat != nil {
		cfg.DateFormat = *o.DateFormat
	}
	if o.Concurrency != nil {
		cfg.Concurrency = *o.Concurrency
	}
	if o.IncludeOpen != nil {
		cfg.IncludeOpen = *o.IncludeOpen
	}
	if o.ShowContributors != nil {
		cfg.ShowContributors = *o.ShowContributors
	}
	if o.IncludeDate != nil {
		cfg.IncludeDate = *o.IncludeDate
	}
	if o.Milestones != nil {
		cfg.Milestones = o.Milestones
	}
	if o.Labels != nil {
		cfg.Labels = o.Labels
	}
}
