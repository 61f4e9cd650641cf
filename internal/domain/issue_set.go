package domain

import "slices"

// IssueSet is an insertion-ordered collection of issues keyed by number.
// It is the single owner of the issues and resolves the links between them.
type IssueSet struct {
	byNumber map[int]*Issue
	order    []int
}

// NewIssueSet creates an IssueSet holding the given issues.
// Issues with an already present number are ignored.
func NewIssueSet(issues ...*Issue) *IssueSet {
	s := &IssueSet{byNumber: make(map[int]*Issue, len(issues))}
	for _, issue := range issues {
		s.Add(issue)
	}
	return s
}

// Add inserts the issue unless its number is already present.
// It reports whether the issue was inserted.
func (s *IssueSet) Add(issue *Issue) bool {
	if _, ok := s.byNumber[issue.Number]; ok {
		return false
	}
	s.byNumber[issue.Number] = issue
	s.order = append(s.order, issue.Number)
	return true
}

// Get returns the issue with the given number, or nil.
func (s *IssueSet) Get(number int) *Issue {
	if number == 0 {
		return nil
	}
	return s.byNumber[number]
}

// Len returns the number of issues.
func (s *IssueSet) Len() int {
	return len(s.order)
}

// Numbers returns the issue numbers in insertion order.
func (s *IssueSet) Numbers() []int {
	return slices.Clone(s.order)
}

// Issues returns the issues in insertion order.
func (s *IssueSet) Issues() []*Issue {
	issues := make([]*Issue, 0, len(s.order))
	for _, n := range s.order {
		issues = append(issues, s.byNumber[n])
	}
	return issues
}

// Link records that pr closes issue. Both sides are set together.
func (s *IssueSet) Link(pr, issue *Issue) {
	issue.LinkedPullRequest = pr.Number
	pr.LinkedIssue = issue.Number
}

// LinkedPullRequest returns the pull request closing the issue, or nil.
func (s *IssueSet) LinkedPullRequest(issue *Issue) *Issue {
	if s == nil || issue.IsPullRequest {
		return nil
	}
	return s.Get(issue.LinkedPullRequest)
}

// LinkedIssue returns the issue closed by the pull request, or nil.
func (s *IssueSet) LinkedIssue(pr *Issue) *Issue {
	if s == nil || !pr.IsPullRequest {
		return nil
	}
	return s.Get(pr.LinkedIssue)
}

// CountIssues returns the number of entries that are not pull requests.
func (s *IssueSet) CountIssues() int {
	n := 0
	for _, issue := range s.byNumber {
		if !issue.IsPullRequest {
			n++
		}
	}
	return n
}

// CountPullRequests returns the number of pull requests.
func (s *IssueSet) CountPullRequests() int {
	return s.Len() - s.CountIssues()
}

// Contributors returns every contributor of every issue in first-seen order.
func (s *IssueSet) Contributors() []string {
	var contributors []string
	for _, issue := range s.Issues() {
		for _, user := range issue.Contributors(s) {
			if !slices.Contains(contributors, user) {
				contributors = append(contributors, user)
			}
		}
	}
	return contributors
}
