package usecase

import (
	"context"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// IssueRepository turns fetched records into a deduplicated IssueSet.
type IssueRepository struct {
	fetcher *IssueFetcher
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(fetcher *IssueFetcher) *IssueRepository {
	return &IssueRepository{
		fetcher: fetcher,
	}
}

// GetIssues fetches the issues of all configured milestones and labels.
// The first record seen for an issue number wins.
func (r *IssueRepository) GetIssues(ctx context.Context, cfg *domain.ChangelogConfig) (*domain.IssueSet, error) {
	records, err := r.fetcher.FetchIssues(ctx, cfg)
	if err != nil {
		return nil, err
	}

	set := domain.NewIssueSet()
	for _, record := range records {
		set.Add(domain.NewIssueFromRecord(record))
	}
	return set, nil
}
