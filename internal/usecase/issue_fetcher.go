// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// IssueFetcher runs the search queries for every milestone and label
// combination and follows the pagination cursors.
type IssueFetcher struct {
	client domain.IssueClient
	logger domain.Logger
}

// NewIssueFetcher creates a new IssueFetcher.
func NewIssueFetcher(client domain.IssueClient, logger domain.Logger) *IssueFetcher {
	return &IssueFetcher{
		client: client,
		logger: logger,
	}
}

// FetchIssues returns the items of every page of every query, concatenated
// in milestone then label order. Duplicates are kept.
// With cfg.Concurrency > 1 the queries run in parallel; the result order is
// the same as for a sequential fetch.
func (f *IssueFetcher) FetchIssues(ctx context.Context, cfg *domain.ChangelogConfig) ([]domain.IssueRecord, error) {
	urls := make([]string, 0, len(cfg.Milestones)*len(cfg.QueryLabels()))
	for _, milestone := range cfg.Milestones {
		for _, label := range cfg.QueryLabels() {
			urls = append(urls, cfg.IssuesURL(milestone, label))
		}
	}

	if cfg.Concurrency <= 1 || len(urls) <= 1 {
		var items []domain.IssueRecord
		for _, url := range urls {
			pages, err := f.fetchQuery(ctx, url, cfg.Credentials)
			if err != nil {
				return nil, err
			}
			items = append(items, pages...)
		}
		return items, nil
	}

	// One slot per query keeps the sequential order
	slots := make([][]domain.IssueRecord, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			pages, err := f.fetchQuery(gctx, url, cfg.Credentials)
			if err != nil {
				return err
			}
			slots[i] = pages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []domain.IssueRecord
	for _, slot := range slots {
		items = append(items, slot...)
	}
	return items, nil
}

// fetchQuery follows the next-page cursors of one query until none remain.
func (f *IssueFetcher) fetchQuery(ctx context.Context, url string, creds domain.Credentials) ([]domain.IssueRecord, error) {
	var items []domain.IssueRecord
	for url != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := f.client.Execute(ctx, url, creds)
		if err != nil {
			return nil, fmt.Errorf("fetch issues: %w", err)
		}
		if f.logger != nil {
			f.logger.Debug("fetch", "fetched page", "url", url, "items", len(resp.Items), "next", resp.HasNextPage())
		}

		items = append(items, resp.Items...)
		url = resp.NextURL
	}
	return items, nil
}
