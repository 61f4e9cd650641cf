package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dir string // Working directory holding the project config file
}

// NewManager creates a new Manager.
func NewManager(dir string) *Manager {
	return &Manager{
		dir: dir,
	}
}

// ConfigInfo returns information about the config file at path.
// An empty path selects the config file in the working directory.
func (m *Manager) ConfigInfo(path string) domain.ConfigInfo {
	return m.getConfigInfo(m.resolvePath(path))
}

// InitConfig creates a config file from the template and returns its path.
// YAML paths receive the same settings encoded as YAML.
func (m *Manager) InitConfig(path string, data domain.ConfigTemplateData) (string, error) {
	path = m.resolvePath(path)

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
	}

	var content []byte
	if isYAML(path) {
		var err error
		content, err = renderYAMLConfig(data)
		if err != nil {
			return "", err
		}
	} else {
		content = []byte(domain.RenderConfigTemplate(data))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", err
	}
	// G306: The config file is meant to be committed with the repository
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // Config file readable by everyone
		return "", err
	}
	return path, nil
}

func (m *Manager) resolvePath(path string) string {
	if path == "" {
		return filepath.Join(m.dir, domain.ConfigFileName)
	}
	if filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// renderYAMLConfig encodes the template settings as YAML.
func renderYAMLConfig(data domain.ConfigTemplateData) ([]byte, error) {
	if data.Project == "" {
		data.Project = "default"
	}
	if data.LogLevel == "" {
		data.LogLevel = domain.DefaultLogLevel
	}

	cfg := domain.Config{
		DefaultProject: data.Project,
		Log:            domain.LogConfig{Level: data.LogLevel},
		Projects: map[string]domain.ProjectConfig{
			data.Project: {
				User:       data.User,
				Repository: data.Repository,
			},
		},
	}
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("encode yaml config: %w", err)
	}
	return append([]byte("# changelog-generator configuration\n"), out...), nil
}
