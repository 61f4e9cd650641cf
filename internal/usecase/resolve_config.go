package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// ResolveConfigInput contains the input for the ResolveConfig use case.
// Fields are ordered to minimize memory padding.
type ResolveConfigInput struct {
	Credentials domain.Credentials // Optional API credentials
	ConfigPath  string             // Config file path, empty for the default file
	Project     string             // Project name, empty for the default project
	Dir         string             // Working directory used for remote detection
	Overrides   domain.ConfigOverrides
}

// ResolveConfigOutput contains the output of the ResolveConfig use case.
// Fields are ordered to minimize memory padding.
type ResolveConfigOutput struct {
	Config        *domain.ChangelogConfig
	ProjectName   string // Selected project, empty when the file has none
	ConfigPath    string // File the config was loaded from, empty when none
	LogLevel      string
	LogFile       string // Log file from the [log] section, empty for none
	WriteStrategy string // File write strategy of the project, empty for the default
	Warnings      []string
}

// ResolveConfig merges config file, command line values and the git remote
// into a ChangelogConfig.
type ResolveConfig struct {
	loader   domain.ConfigLoader
	resolver domain.RemoteResolver
	logger   domain.Logger
}

// NewResolveConfig creates a new ResolveConfig use case.
func NewResolveConfig(loader domain.ConfigLoader, resolver domain.RemoteResolver, logger domain.Logger) *ResolveConfig {
	return &ResolveConfig{
		loader:   loader,
		resolver: resolver,
		logger:   logger,
	}
}

// Execute resolves the changelog config. The result is not validated.
func (uc *ResolveConfig) Execute(_ context.Context, in ResolveConfigInput) (*ResolveConfigOutput, error) {
	file, err := uc.loader.Load(in.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := &ResolveConfigOutput{
		ConfigPath: file.Path,
		LogLevel:   file.Log.Level,
		LogFile:    file.Log.File,
		Warnings:   file.Warnings,
	}

	var project domain.ProjectConfig
	switch {
	case len(file.Projects) > 0:
		out.ProjectName, project, err = file.Project(in.Project)
		if err != nil {
			return nil, err
		}
	case in.Project != "":
		return nil, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, in.Project)
	}

	out.WriteStrategy = project.WriteStrategy
	cfg := project.ChangelogConfig()
	in.Overrides.Apply(cfg)
	cfg.Credentials = in.Credentials

	if (cfg.User == "" || cfg.Repository == "") && uc.resolver != nil {
		uc.applyRemote(cfg, in.Dir)
	}

	out.Config = cfg
	return out, nil
}

// applyRemote fills the missing owner or repository from the origin remote.
func (uc *ResolveConfig) applyRemote(cfg *domain.ChangelogConfig, dir string) {
	owner, repo, err := uc.resolver.ResolveRepository(dir)
	if err != nil {
		if uc.logger != nil {
			uc.logger.Debug("config", "repository not detected from git remote", "error", err)
		}
		return
	}
	if cfg.User == "" {
		cfg.User = owner
	}
	if cfg.Repository == "" {
		cfg.Repository = repo
	}
	if uc.logger != nil {
		uc.logger.Debug("config", "repository detected from git remote", "user", cfg.User, "repository", cfg.Repository)
	}
}
