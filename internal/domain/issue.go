package domain

import (
	"encoding/json"
	"fmt"
	"html"
	"slices"
	"sort"
	"strings"
)

// Line formats used when rendering an issue in the changelog.
const (
	singleContributorLineFormat = " - [%d: %s](%s) thanks to @%s"
	multiContributorLineFormat  = " - [%d: %s](%s) thanks to @%s and @%s"
)

// titleReplacer escapes characters that collide with Markdown link syntax
// and template emphasis. It runs after HTML entity escaping.
var titleReplacer = strings.NewReplacer(
	"[", "&#91;",
	"]", "&#93;",
	"_", "&#95;",
)

// IssueRecord is a single item of the issue-search API response.
// Fields are ordered to minimize memory padding.
type IssueRecord struct {
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	HTMLURL       string        `json:"html_url"`
	User          RecordUser    `json:"user"`
	Labels        []RecordLabel `json:"labels"`
	Number        int           `json:"number"`
	IsPullRequest bool          `json:"-"`
}

// RecordUser is the author of an issue record.
type RecordUser struct {
	Login string `json:"login"`
}

// RecordLabel is a label attached to an issue record.
type RecordLabel struct {
	Name string `json:"name"`
}

// UnmarshalJSON decodes a record and detects pull requests by the presence
// of the pull_request key. Its value does not matter and may be null.
func (r *IssueRecord) UnmarshalJSON(data []byte) error {
	type plain IssueRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*r = IssueRecord(p)
	_, r.IsPullRequest = keys["pull_request"]
	return nil
}

// Issue is an issue or pull request taking part in a changelog.
// Links to the counterpart issue or pull request are stored as issue numbers
// and resolved through the IssueSet that owns the issue.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title             string
	Body              string
	URL               string
	User              string
	Labels            []string
	Number            int
	LinkedPullRequest int // Number of the pull request closing this issue (0 = none)
	LinkedIssue       int // Number of the issue closed by this pull request (0 = none)
	IsPullRequest     bool
}

// NewIssueFromRecord creates an Issue from an API record.
// The title is escaped and the labels are sorted alphabetically.
func NewIssueFromRecord(r IssueRecord) *Issue {
	labels := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, l.Name)
	}
	sort.Strings(labels)

	return &Issue{
		Number:        r.Number,
		Title:         EscapeTitle(r.Title),
		Body:          r.Body,
		URL:           r.HTMLURL,
		User:          r.User.Login,
		Labels:        labels,
		IsPullRequest: r.IsPullRequest,
	}
}

// EscapeTitle escapes HTML entities in a title and then the characters that
// would break Markdown link text.
func EscapeTitle(title string) string {
	return titleReplacer.Replace(html.EscapeString(title))
}

// References reports whether the issue body mentions #<number>.
func (i *Issue) References(number int) bool {
	if i.Body == "" {
		return false
	}
	return strings.Contains(i.Body, fmt.Sprintf("#%d", number))
}

// Render returns the changelog line for the issue.
// The author of the linked counterpart is credited as well when it differs.
func (i *Issue) Render(set *IssueSet) string {
	linked := set.LinkedIssue(i)
	if linked == nil {
		linked = set.LinkedPullRequest(i)
	}
	if linked != nil && linked.User != i.User {
		return fmt.Sprintf(multiContributorLineFormat, i.Number, i.Title, i.URL, i.User, linked.User)
	}
	return fmt.Sprintf(singleContributorLineFormat, i.Number, i.Title, i.URL, i.User)
}

// Contributors returns the issue author followed by the authors of the
// linked pull request and linked issue, without duplicates.
func (i *Issue) Contributors(set *IssueSet) []string {
	contributors := []string{i.User}
	for _, linked := range []*Issue{set.LinkedPullRequest(i), set.LinkedIssue(i)} {
		if linked == nil || slices.Contains(contributors, linked.User) {
			continue
		}
		contributors = append(contributors, linked.User)
	}
	return contributors
}
