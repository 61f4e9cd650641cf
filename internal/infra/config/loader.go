// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Global config location under the user config home.
const (
	GlobalConfigDirName  = "changelog-generator"
	GlobalConfigFileName = "config.toml"
)

// Loader loads configuration from TOML or YAML files.
type Loader struct {
	dir           string // Working directory holding the project config file
	globalConfDir string // Path to global config directory (e.g., ~/.config/changelog-generator)
}

// NewLoader creates a new Loader.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:           dir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dir, globalConfDir string) *Loader {
	return &Loader{
		dir:           dir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDirName)
}

// Load returns the configuration.
// With an explicit path only that file is read and it must exist.
// Without a path the global config and the config file in the working
// directory are merged, the latter taking precedence; both may be missing.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path != "" {
		path = l.resolvePath(path)
		cfg, err := l.loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		if err != nil {
			return nil, err
		}
		return mergeConfigs(domain.NewDefaultConfig(), cfg), nil
	}

	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.dir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, GlobalConfigFileName))
}

// GlobalConfigPath returns the path of the global config file, or an empty
// string when no config home is available.
func (l *Loader) GlobalConfigPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, GlobalConfigFileName)
}

func (l *Loader) resolvePath(path string) string {
	if filepath.IsAbs(path) || l.dir == "" {
		return path
	}
	return filepath.Join(l.dir, path)
}

// loadFile loads a configuration from a file. The format is chosen by the
// file extension: .yaml and .yml are YAML, anything else is TOML.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := convertRawToDomainConfig(raw)
	cfg.Path = path
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{
		Projects: make(map[string]domain.ProjectConfig),
	}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "default_project":
			if s, ok := value.(string); ok {
				res.DefaultProject = s
			} else {
				warnings = append(warnings, "invalid value for default_project")
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						} else {
							warnings = append(warnings, "invalid value for level in [log]")
						}
					case "file":
						if s, ok := v.(string); ok {
							res.Log.File = s
						} else {
							warnings = append(warnings, "invalid value for file in [log]")
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		case "projects":
			if m, ok := value.(map[string]any); ok {
				for name, def := range m {
					sub, ok := def.(map[string]any)
					if !ok {
						warnings = append(warnings, fmt.Sprintf("invalid project definition: %s", name))
						continue
					}
					p, w := parseProjectSection(name, sub)
					res.Projects[name] = p
					warnings = append(warnings, w...)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseProjectSection parses one [projects.<name>] table.
func parseProjectSection(name string, raw map[string]any) (domain.ProjectConfig, []string) {
	var p domain.ProjectConfig
	var warnings []string
	invalid := func(k string) {
		warnings = append(warnings, fmt.Sprintf("invalid value for %s in [projects.%s]", k, name))
	}

	for k, v := range raw {
		var ok bool
		switch k {
		case "user":
			p.User, ok = v.(string)
		case "repository":
			p.Repository, ok = v.(string)
		case "non_grouped_label":
			p.NonGroupedLabel, ok = v.(string)
		case "root_github_url":
			p.RootGitHubURL, ok = v.(string)
		case "date_format":
			p.DateFormat, ok = v.(string)
		case "write_strategy":
			p.WriteStrategy, ok = v.(string)
		case "milestones":
			p.Milestones, ok = toStringSlice(v)
		case "labels":
			p.Labels, ok = toStringSlice(v)
		case "concurrency":
			p.Concurrency, ok = toInt(v)
		case "include_open":
			p.IncludeOpen, ok = v.(bool)
		case "show_contributors":
			p.ShowContributors, ok = v.(bool)
		case "include_date":
			p.IncludeDate, ok = v.(bool)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [projects.%s]: %s", name, k))
			continue
		}
		if !ok {
			invalid(k)
		}
	}

	return p, warnings
}

// toStringSlice accepts a list of strings or a single string.
// Integers are formatted back. Floats are rejected: an unquoted 1.0 would
// come back as "1".
func toStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := toString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		s, ok := toString(val)
		if !ok {
			return nil, false
		}
		return []string{s}, true
	}
}

func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int, int64, uint64:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

// toInt handles the integer types produced by go-toml (int64) and yaml.v3 (int).
func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		return int(val), true //nolint:gosec // config values are small
	default:
		return 0, false
	}
}

// mergeConfigs merges two configs, with override taking precedence.
// Projects are replaced as a whole.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Projects:       make(map[string]domain.ProjectConfig, len(base.Projects)+len(override.Projects)),
		DefaultProject: base.DefaultProject,
		Path:           base.Path,
		Log:            base.Log,
		Warnings:       append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	for name, p := range base.Projects {
		result.Projects[name] = p
	}
	for name, p := range override.Projects {
		result.Projects[name] = p
	}

	if override.DefaultProject != "" {
		result.DefaultProject = override.DefaultProject
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}
	if override.Path != "" {
		result.Path = override.Path
	}
	return result
}
