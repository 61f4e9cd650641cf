package domain

// IssueGroup is a named section of the changelog.
type IssueGroup struct {
	Name   string
	Issues []*Issue
}

// IssueGroups is an insertion-ordered mapping from group name to IssueGroup.
// The first issue seen for a name decides the position of its group.
type IssueGroups struct {
	byName map[string]*IssueGroup
	names  []string
}

// NewIssueGroups creates an empty IssueGroups.
func NewIssueGroups() *IssueGroups {
	return &IssueGroups{byName: make(map[string]*IssueGroup)}
}

// Add appends the issue to the named group, creating the group on first use.
func (g *IssueGroups) Add(name string, issue *Issue) {
	group, ok := g.byName[name]
	if !ok {
		group = &IssueGroup{Name: name}
		g.byName[name] = group
		g.names = append(g.names, name)
	}
	group.Issues = append(group.Issues, issue)
}

// Get returns the named group, or nil.
func (g *IssueGroups) Get(name string) *IssueGroup {
	return g.byName[name]
}

// Len returns the number of groups.
func (g *IssueGroups) Len() int {
	return len(g.names)
}

// Names returns the group names in insertion order.
func (g *IssueGroups) Names() []string {
	return append([]string(nil), g.names...)
}

// Groups returns the groups in insertion order.
func (g *IssueGroups) Groups() []*IssueGroup {
	groups := make([]*IssueGroup, 0, len(g.names))
	for _, name := range g.names {
		groups = append(groups, g.byName[name])
	}
	return groups
}
