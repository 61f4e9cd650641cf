package domain

import "strings"

// GroupIssues links pull requests to the issues they close and then groups
// the issues by label.
func GroupIssues(set *IssueSet, cfg *ChangelogConfig) *IssueGroups {
	LinkIssues(set)
	return groupIssuesByLabels(set, cfg)
}

// LinkIssues links every pull request to each issue its body references
// with #<number>.
//
// A pull request referencing several issues is linked back from all of
// them, but keeps only the last match as its own LinkedIssue. An issue
// referenced by several pull requests keeps the last of them.
func LinkIssues(set *IssueSet) {
	issues := set.Issues()
	for _, pr := range issues {
		if !pr.IsPullRequest || pr.Body == "" {
			continue
		}
		for _, issue := range issues {
			if issue.IsPullRequest || !pr.References(issue.Number) {
				continue
			}
			set.Link(pr, issue)
		}
	}
}

// IssuesToGroup returns the issues that appear in the changelog.
// Issues closed by a pull request are represented by that pull request.
func IssuesToGroup(set *IssueSet) []*Issue {
	var issues []*Issue
	for _, issue := range set.Issues() {
		if !issue.IsPullRequest && issue.LinkedPullRequest != 0 {
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

// GroupName returns the name of the group the issue belongs to.
func GroupName(issue *Issue, cfg *ChangelogConfig) string {
	labels := issue.Labels
	if len(cfg.Labels) > 0 {
		labels = intersect(issue.Labels, cfg.Labels)
	}

	if len(labels) == 0 && cfg.NonGroupedLabel != "" {
		return cfg.NonGroupedLabel
	}
	return strings.Join(labels, ",")
}

func groupIssuesByLabels(set *IssueSet, cfg *ChangelogConfig) *IssueGroups {
	groups := NewIssueGroups()
	for _, issue := range IssuesToGroup(set) {
		groups.Add(GroupName(issue, cfg), issue)
	}
	return groups
}

// intersect returns the values of a that are also in b, in the order of a.
func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}

	var out []string
	for _, v := range a {
		if _, ok := in[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
