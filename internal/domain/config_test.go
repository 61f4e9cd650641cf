package domain

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.NotNil(t, cfg.Projects)
	assert.Empty(t, cfg.Projects)
}

func TestConfig_Project(t *testing.T) {
	cfg := &Config{
		Projects: map[string]ProjectConfig{
			"beta":  {User: "jwage", Repository: "beta"},
			"alpha": {User: "jwage", Repository: "alpha"},
		},
	}

	t.Run("explicit name", func(t *testing.T) {
		name, p, err := cfg.Project("beta")
		require.NoError(t, err)
		assert.Equal(t, "beta", name)
		assert.Equal(t, "beta", p.Repository)
	})

	t.Run("first sorted project without default", func(t *testing.T) {
		name, _, err := cfg.Project("")
		require.NoError(t, err)
		assert.Equal(t, "alpha", name)
	})

	t.Run("default project", func(t *testing.T) {
		withDefault := *cfg
		withDefault.DefaultProject = "beta"
		name, _, err := withDefault.Project("")
		require.NoError(t, err)
		assert.Equal(t, "beta", name)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, _, err := cfg.Project("gamma")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("no projects", func(t *testing.T) {
		_, _, err := NewDefaultConfig().Project("")
		assert.ErrorIs(t, err, ErrConfigEmpty)
	})
}

func TestProjectConfig_ChangelogConfig(t *testing.T) {
	// Setup
	p := ProjectConfig{
		User:             "jwage",
		Repository:       "changelog-generator",
		Milestones:       []string{"1.0", "1.1"},
		Labels:           []string{"Bug"},
		NonGroupedLabel:  "Other",
		Concurrency:      4,
		IncludeOpen:      true,
		ShowContributors: true,
	}

	// Execute
	cfg := p.ChangelogConfig()

	// Assert
	assert.Equal(t, "jwage", cfg.User)
	assert.Equal(t, "changelog-generator", cfg.Repository)
	assert.Equal(t, []string{"1.0", "1.1"}, cfg.Milestones)
	assert.Equal(t, []string{"Bug"}, cfg.Labels)
	assert.Equal(t, "Other", cfg.NonGroupedLabel)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.IncludeOpen)
	assert.True(t, cfg.ShowContributors)
	assert.False(t, cfg.IncludeDate)
	assert.Equal(t, DefaultRootGitHubURL, cfg.RootGitHubURL)
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)

	// Round trip drops defaults
	assert.Equal(t, p, ProjectConfigFrom(cfg))
}

func TestRenderConfigTemplate(t *testing.T) {
	// Execute
	content := RenderConfigTemplate(ConfigTemplateData{
		Project:    "changelog-generator",
		User:       "jwage",
		Repository: "changelog-generator",
	})

	// Assert
	assert.True(t, strings.HasPrefix(content, "# changelog-generator configuration"))

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(content), &raw))
	assert.Equal(t, "changelog-generator", raw["default_project"])

	projects, ok := raw["projects"].(map[string]any)
	require.True(t, ok)
	project, ok := projects["changelog-generator"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwage", project["user"])
	assert.Equal(t, "changelog-generator", project["repository"])

	logSection, ok := raw["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultLogLevel, logSection["level"])
}

func TestRenderConfigTemplate_Defaults(t *testing.T) {
	content := RenderConfigTemplate(ConfigTemplateData{})

	assert.Contains(t, content, `default_project = "default"`)
	assert.Contains(t, content, "[projects.default]")
}

func TestConfigOverrides_Apply(t *testing.T) {
	// Setup
	cfg := ProjectConfig{
		User:        "jwage",
		Repository:  "changelog-generator",
		Milestones:  []string{"1.0"},
		Labels:      []string{"Bug"},
		IncludeOpen: true,
	}.ChangelogConfig()
	repo := "other"
	includeOpen := false
	concurrency := 3

	// Execute
	ConfigOverrides{
		Repository:  &repo,
		IncludeOpen: &includeOpen,
		Concurrency: &concurrency,
		Milestones:  []string{"2.0"},
	}.Apply(cfg)

	// Assert
	assert.Equal(t, "jwage", cfg.User)
	assert.Equal(t, "other", cfg.Repository)
	assert.Equal(t, []string{"2.0"}, cfg.Milestones)
	assert.Equal(t, []string{"Bug"}, cfg.Labels)
	assert.False(t, cfg.IncludeOpen)
	assert.Equal(t, 3, cfg.Concurrency)
}
