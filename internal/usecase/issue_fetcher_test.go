package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/testutil"
	"github.com/runoshun/changelog-generator/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(number int) domain.IssueRecord {
	return domain.IssueRecord{Number: number, Title: "Issue", User: domain.RecordUser{Login: "jwage"}}
}

func numbers(records []domain.IssueRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.Number)
	}
	return out
}

// arrangePagedClient sets up two milestones and two labels. Every query
// returns two pages.
func arrangePagedClient(cfg *domain.ChangelogConfig) *testutil.MockIssueClient {
	client := testutil.NewMockIssueClient()
	n := 1
	for _, m := range cfg.Milestones {
		for _, l := range cfg.QueryLabels() {
			first := cfg.IssuesURL(m, l)
			next := first + "&page=2"
			client.Responses[first] = &domain.IssueClientResponse{
				Items:   []domain.IssueRecord{record(n)},
				NextURL: next,
			}
			client.Responses[next] = &domain.IssueClientResponse{
				Items: []domain.IssueRecord{record(n + 1)},
			}
			n += 2
		}
	}
	return client
}

func TestIssueFetcher_FetchIssues(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", []string{"Enhancement", "Bug"})
	cfg.Milestones = append(cfg.Milestones, "1.1")
	cfg.Credentials = domain.OAuthToken{Token: "abc"}
	client := arrangePagedClient(cfg)
	fetcher := usecase.NewIssueFetcher(client, &testutil.MockLogger{})

	// Execute
	records, err := fetcher.FetchIssues(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, numbers(records))
	assert.Equal(t, []string{
		cfg.IssuesURL("1.0", "Enhancement"),
		cfg.IssuesURL("1.0", "Enhancement") + "&page=2",
		cfg.IssuesURL("1.0", "Bug"),
		cfg.IssuesURL("1.0", "Bug") + "&page=2",
		cfg.IssuesURL("1.1", "Enhancement"),
		cfg.IssuesURL("1.1", "Enhancement") + "&page=2",
		cfg.IssuesURL("1.1", "Bug"),
		cfg.IssuesURL("1.1", "Bug") + "&page=2",
	}, client.Calls)
	for _, creds := range client.Creds {
		assert.Equal(t, domain.OAuthToken{Token: "abc"}, creds)
	}
}

func TestIssueFetcher_FetchIssues_Concurrent(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", []string{"Enhancement", "Bug"})
	cfg.Milestones = append(cfg.Milestones, "1.1")
	cfg.Concurrency = 3
	client := arrangePagedClient(cfg)
	fetcher := usecase.NewIssueFetcher(client, nil)

	// Execute
	records, err := fetcher.FetchIssues(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, numbers(records))
	assert.Equal(t, 8, client.CallCount())
}

func TestIssueFetcher_FetchIssues_NoLabels(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := testutil.NewMockIssueClient()
	client.Responses[cfg.IssuesURL("1.0", "")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{record(1), record(1)},
	}
	fetcher := usecase.NewIssueFetcher(client, nil)

	// Execute
	records, err := fetcher.FetchIssues(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, numbers(records))
	assert.Equal(t, []string{cfg.IssuesURL("1.0", "")}, client.Calls)
}

func TestIssueFetcher_FetchIssues_Error(t *testing.T) {
	for _, concurrency := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", concurrency), func(t *testing.T) {
			// Setup
			cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", []string{"Enhancement", "Bug"})
			cfg.Concurrency = concurrency
			client := arrangePagedClient(cfg)
			apiErr := &domain.APIError{StatusCode: 400, Message: "It failed yo!"}
			client.Errors[cfg.IssuesURL("1.0", "Bug")] = apiErr
			fetcher := usecase.NewIssueFetcher(client, nil)

			// Execute
			records, err := fetcher.FetchIssues(context.Background(), cfg)

			// Assert
			require.Error(t, err)
			assert.Nil(t, records)
			var target *domain.APIError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, 400, target.StatusCode)
		})
	}
}

func TestIssueFetcher_FetchIssues_Canceled(t *testing.T) {
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := testutil.NewMockIssueClient()
	fetcher := usecase.NewIssueFetcher(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.FetchIssues(ctx, cfg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.CallCount())
}

func TestIssueRepository_GetIssues(t *testing.T) {
	// Setup
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", []string{"Enhancement", "Bug"})
	client := testutil.NewMockIssueClient()
	first := record(1)
	first.Title = "first"
	dup := record(1)
	dup.Title = "duplicate"
	client.Responses[cfg.IssuesURL("1.0", "Enhancement")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{first, record(2)},
	}
	client.Responses[cfg.IssuesURL("1.0", "Bug")] = &domain.IssueClientResponse{
		Items: []domain.IssueRecord{dup, record(3)},
	}
	repo := usecase.NewIssueRepository(usecase.NewIssueFetcher(client, nil))

	// Execute
	set, err := repo.GetIssues(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, set.Numbers())
	assert.Equal(t, "first", set.Get(1).Title)
}

func TestIssueRepository_GetIssues_Error(t *testing.T) {
	cfg := domain.NewChangelogConfig("jwage", "changelog-generator", "1.0", nil)
	client := testutil.NewMockIssueClient()
	client.Err = errors.New("connection refused")
	repo := usecase.NewIssueRepository(usecase.NewIssueFetcher(client, nil))

	set, err := repo.GetIssues(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "connection refused")
}
