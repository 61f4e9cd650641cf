package usecase

import (
	"context"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	GlobalPath string // Global config file, reported when no explicit path is given
	Resolve    ResolveConfigInput
}

// ShowConfigOutput contains the output of the ShowConfig use case.
// Fields are ordered to minimize memory padding.
type ShowConfigOutput struct {
	ProjectName string
	File        domain.ConfigInfo    // Config file info
	Global      *domain.ConfigInfo   // Global config file info, nil when not consulted
	Project     domain.ProjectConfig // Effective project settings
	Warnings    []string
}

// ShowConfig displays the config file and the effective project settings.
type ShowConfig struct {
	configManager domain.ConfigManager
	resolve       *ResolveConfig
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, resolve *ResolveConfig) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		resolve:       resolve,
	}
}

// Execute retrieves config file information and the effective settings.
func (uc *ShowConfig) Execute(ctx context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	resolved, err := uc.resolve.Execute(ctx, in.Resolve)
	if err != nil {
		return nil, err
	}

	project := domain.ProjectConfigFrom(resolved.Config)
	project.WriteStrategy = resolved.WriteStrategy

	out := &ShowConfigOutput{
		File:        uc.configManager.ConfigInfo(in.Resolve.ConfigPath),
		ProjectName: resolved.ProjectName,
		Project:     project,
		Warnings:    resolved.Warnings,
	}
	if in.GlobalPath != "" && in.Resolve.ConfigPath == "" {
		global := uc.configManager.ConfigInfo(in.GlobalPath)
		out.Global = &global
	}
	return out, nil
}
