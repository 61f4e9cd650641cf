package usecase

import (
	"context"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Path    string // Config file path, empty for the default file
	Project string // Project name used in the template
	Dir     string // Working directory used for remote detection
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes a configuration file from the template.
type InitConfig struct {
	configManager domain.ConfigManager
	resolver      domain.RemoteResolver
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager, resolver domain.RemoteResolver) *InitConfig {
	return &InitConfig{
		configManager: configManager,
		resolver:      resolver,
	}
}

// Execute creates a configuration file with the default template.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	data := templateData(uc.resolver, in.Project, in.Dir)
	path, err := uc.configManager.InitConfig(in.Path, data)
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: path}, nil
}
