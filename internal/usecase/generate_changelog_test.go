package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/testutil"
	"github.com/runoshun/changelog-generator/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	issueURL = "https://github.com/jwage/changelog-generator/issue/1"
	prURL    = "https://github.com/jwage/changelog-generator/pull/5"
)

func newGenerator(client domain.IssueClient, logger domain.Logger) *usecase.GenerateChangelog {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	repo := usecase.NewIssueRepository(usecase.NewIssueFetcher(client, logger))
	return usecase.NewGenerateChangelog(repo, clock, logger)
}

// arrangeLinkedIssues returns a client answering with one issue closed by
// one pull request of another user.
func arrangeLinkedIssues(cfg *domain.ChangelogConfig) *testutil.MockIssueClient {
	client := testutil.NewMockIssueClient()
	client.Responses[cfg.IssuesURL("1.0", "")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{
			{
				Number:  1,
				Title:   "Issue #1",
				HTMLURL: issueURL,
				User:    domain.RecordUser{Login: "jwage"},
				Labels:  []domain.RecordLabel{{Name: "Enhancement"}},
			},
			{
				Number:        5,
				Title:         "Issue #1",
				Body:          "Fixes #1",
				HTMLURL:       prURL,
				User:          domain.RecordUser{Login: "Ocramius"},
				Labels:        []domain.RecordLabel{{Name: "Enhancement"}},
				IsPullRequest: true,
			},
		},
	}
	return client
}

func TestGenerateChangelog_Execute(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := arrangeLinkedIssues(cfg)
	logger := &testutil.MockLogger{}
	uc := newGenerator(client, logger)
	output := &testutil.MockOutput{}

	// Execute
	out, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1.0",
		"===",
		"",
		"- Total issues resolved: **1**",
		"- Total pull requests resolved: **1**",
		"- Total contributors: **2**",
		"",
		"Enhancement",
		"-----------",
		"",
		" - [5: Issue #1](" + prURL + ") thanks to @Ocramius and @jwage",
		"",
	}, output.Lines)
	assert.Equal(t, "1.0", out.Title)
	assert.Equal(t, 1, out.Issues)
	assert.Equal(t, 1, out.PullRequests)
	assert.Equal(t, 2, out.Contributors)
	assert.Equal(t, 1, out.Groups)
	assert.Equal(t, len(output.Lines), out.LinesWritten)
	assert.Contains(t, logger.Entries, "[INFO] [generate] changelog generated")
}

func TestGenerateChangelog_Execute_WithDateAndContributors(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	cfg.IncludeDate = true
	cfg.ShowContributors = true
	client := arrangeLinkedIssues(cfg)
	uc := newGenerator(client, nil)
	output := &testutil.MockOutput{}

	// Execute
	_, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, output.Lines)
	assert.Equal(t, "1.0 - [2026-10-18]", output.Lines[0])
	assert.Equal(t, "==================", output.Lines[1])
	assert.Equal(t, []string{
		"",
		"Contributors",
		"------------",
		"",
		" - [@jwage](https://github.com/jwage)",
		" - [@Ocramius](https://github.com/Ocramius)",
		"",
	}, output.Lines[len(output.Lines)-7:])
}

func TestGenerateChangelog_Execute_GroupsInFirstSeenOrder(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", []string{"Enhancement", "Bug"})
	cfg.NonGroupedLabel = "Other"
	client := testutil.NewMockIssueClient()
	client.Responses[cfg.IssuesURL("1.0", "Enhancement")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{
			{Number: 2, Title: "Two", User: domain.RecordUser{Login: "jwage"}, Labels: []domain.RecordLabel{{Name: "Bug"}}},
			{Number: 3, Title: "Three", User: domain.RecordUser{Login: "jwage"}, Labels: []domain.RecordLabel{{Name: "Enhancement"}, {Name: "Other"}}},
		},
	}
	client.Responses[cfg.IssuesURL("1.0", "Bug")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{
			{Number: 4, Title: "Four", User: domain.RecordUser{Login: "jwage"}, Labels: []domain.RecordLabel{{Name: "Question"}}},
			{Number: 2, Title: "Two", User: domain.RecordUser{Login: "jwage"}, Labels: []domain.RecordLabel{{Name: "Bug"}}},
		},
	}
	uc := newGenerator(client, nil)
	output := &testutil.MockOutput{}

	// Execute
	out, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, out.Groups)
	assert.Equal(t, 3, out.Issues)
	assert.Equal(t, 1, out.Contributors)

	assert.Equal(t, []string{
		"1.0",
		"===",
		"",
		"- Total issues resolved: **3**",
		"- Total pull requests resolved: **0**",
		"- Total contributors: **1**",
		"",
		"Bug",
		"---",
		"",
		" - [2: Two]() thanks to @jwage",
		"",
		"Enhancement",
		"-----------",
		"",
		" - [3: Three]() thanks to @jwage",
		"",
		"Other",
		"-----",
		"",
		" - [4: Four]() thanks to @jwage",
		"",
	}, output.Lines)
}

func TestGenerateChangelog_Execute_UnnamedGroupHasNoHeader(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := testutil.NewMockIssueClient()
	client.Responses[cfg.IssuesURL("1.0", "")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{
			{Number: 7, Title: "Unlabeled", User: domain.RecordUser{Login: "jwage"}},
		},
	}
	uc := newGenerator(client, nil)
	output := &testutil.MockOutput{}

	// Execute
	out, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Groups)
	assert.Equal(t, []string{
		"1.0",
		"===",
		"",
		"- Total issues resolved: **1**",
		"- Total pull requests resolved: **0**",
		"- Total contributors: **1**",
		"",
		"",
		"",
		"",
		" - [7: Unlabeled]() thanks to @jwage",
		"",
	}, output.Lines)
}

func TestGenerateChangelog_Execute_InvalidConfig(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "", "1.0", nil)
	client := testutil.NewMockIssueClient()
	uc := newGenerator(client, nil)
	output := &testutil.MockOutput{}

	// Execute
	out, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Nil(t, out)
	assert.Zero(t, client.CallCount())
	assert.Empty(t, output.Lines)
}

func TestGenerateChangelog_Execute_NilConfig(t *testing.T) {
	uc := newGenerator(testutil.NewMockIssueClient(), nil)

	_, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{Output: &testutil.MockOutput{}})

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestGenerateChangelog_Execute_FetchErrorWritesNothing(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := testutil.NewMockIssueClient()
	client.Err = &domain.APIError{StatusCode: 400, Message: "It failed yo!"}
	uc := newGenerator(client, nil)
	output := &testutil.MockOutput{}

	// Execute
	_, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), `API call to GitHub failed with status code 400 and message "It failed yo!"`)
	assert.Empty(t, output.Lines)
}

func TestGenerateChangelog_Execute_OutputError(t *testing.T) {
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	uc := newGenerator(arrangeLinkedIssues(cfg), nil)
	output := &testutil.MockOutput{Err: errors.New("disk full")}

	_, err := uc.Execute(context.Background(), usecase.GenerateChangelogInput{
		Config: cfg,
		Output: output,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write changelog: disk full")
}
