package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueGroups_Add(t *testing.T) {
	// Setup
	groups := NewIssueGroups()
	a := &Issue{Number: 1}
	b := &Issue{Number: 2}
	c := &Issue{Number: 3}

	// Execute
	groups.Add("Enhancement", a)
	groups.Add("Bug", b)
	groups.Add("Enhancement", c)

	// Assert
	assert.Equal(t, 2, groups.Len())
	assert.Equal(t, []string{"Enhancement", "Bug"}, groups.Names())
	assert.Equal(t, []*Issue{a, c}, groups.Get("Enhancement").Issues)
	assert.Equal(t, []*Issue{b}, groups.Get("Bug").Issues)
	assert.Nil(t, groups.Get("Missing"))

	all := groups.Groups()
	if assert.Len(t, all, 2) {
		assert.Equal(t, "Enhancement", all[0].Name)
		assert.Equal(t, "Bug", all[1].Name)
	}
}
