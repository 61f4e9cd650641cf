package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// GenerateChangelogInput contains the input for the GenerateChangelog use case.
type GenerateChangelogInput struct {
	Config *domain.ChangelogConfig // Fully resolved changelog config
	Output domain.ChangelogOutput  // Destination of the rendered lines
}

// GenerateChangelogOutput contains the output of the GenerateChangelog use case.
// Fields are ordered to minimize memory padding.
type GenerateChangelogOutput struct {
	Title        string
	Issues       int // Resolved issues that are not pull requests
	PullRequests int
	Contributors int
	Groups       int
	LinesWritten int
}

// GenerateChangelog fetches, groups and renders the changelog of a milestone.
type GenerateChangelog struct {
	issues *IssueRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewGenerateChangelog creates a new GenerateChangelog use case.
func NewGenerateChangelog(issues *IssueRepository, clock domain.Clock, logger domain.Logger) *GenerateChangelog {
	return &GenerateChangelog{
		issues: issues,
		clock:  clock,
		logger: logger,
	}
}

// Execute generates the changelog and writes it to the output.
// Nothing is written unless fetching and grouping succeed.
func (uc *GenerateChangelog) Execute(ctx context.Context, in GenerateChangelogInput) (*GenerateChangelogOutput, error) {
	cfg := in.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", domain.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := uc.issues.GetIssues(ctx, cfg)
	if err != nil {
		return nil, err
	}
	groups := domain.GroupIssues(set, cfg)

	title := cfg.Title(uc.clock.Now())
	contributors := set.Contributors()
	lines := renderChangelog(cfg, title, set, groups, contributors)

	if err := in.Output.WriteLines(lines...); err != nil {
		return nil, fmt.Errorf("write changelog: %w", err)
	}

	out := &GenerateChangelogOutput{
		Title:        title,
		Issues:       set.CountIssues(),
		PullRequests: set.CountPullRequests(),
		Contributors: len(contributors),
		Groups:       groups.Len(),
		LinesWritten: len(lines),
	}
	if uc.logger != nil {
		uc.logger.Info("generate", "changelog generated",
			"milestone", cfg.Milestone(),
			"issues", out.Issues,
			"pull_requests", out.PullRequests,
			"contributors", out.Contributors,
			"groups", out.Groups,
		)
	}
	return out, nil
}

func renderChangelog(cfg *domain.ChangelogConfig, title string, set *domain.IssueSet, groups *domain.IssueGroups, contributors []string) []string {
	lines := []string{
		title,
		underline(title, "="),
		"",
		fmt.Sprintf("- Total issues resolved: **%d**", set.CountIssues()),
		fmt.Sprintf("- Total pull requests resolved: **%d**", set.CountPullRequests()),
		fmt.Sprintf("- Total contributors: **%d**", len(contributors)),
	}

	for _, group := range groups.Groups() {
		lines = append(lines, "", group.Name, underline(group.Name, "-"), "")
		for _, issue := range group.Issues {
			lines = append(lines, issue.Render(set))
		}
	}

	if cfg.ShowContributors {
		lines = append(lines, "", "Contributors", underline("Contributors", "-"), "")
		for _, user := range contributors {
			lines = append(lines, fmt.Sprintf(" - [@%s](%s)", user, cfg.ContributorURL(user)))
		}
	}

	return append(lines, "")
}

// underline returns a setext underline as wide as text.
func underline(text, char string) string {
	return strings.Repeat(char, utf8.RuneCountInString(text))
}
