package usecase

import (
	"context"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	Project string // Project name used in the template
	Dir     string // Working directory used for remote detection
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string // Configuration template content
}

// ShowConfigTemplate renders the config template, prefilled from the git remote.
type ShowConfigTemplate struct {
	resolver domain.RemoteResolver
}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate(resolver domain.RemoteResolver) *ShowConfigTemplate {
	return &ShowConfigTemplate{
		resolver: resolver,
	}
}

// Execute generates and returns a configuration template.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	data := templateData(uc.resolver, in.Project, in.Dir)
	return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(data)}, nil
}

// templateData builds the template placeholders. The owner and repository
// are left empty when the git remote cannot be resolved.
func templateData(resolver domain.RemoteResolver, project, dir string) domain.ConfigTemplateData {
	data := domain.ConfigTemplateData{Project: project}
	if resolver != nil {
		if owner, repo, err := resolver.ResolveRepository(dir); err == nil {
			data.User = owner
			data.Repository = repo
			if data.Project == "" {
				data.Project = repo
			}
		}
	}
	return data
}
