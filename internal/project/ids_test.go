package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		id1, id2 string
		want     bool
	}{
		{"US-001", "US-002", true},
		{"US-2", "US-10", true},
		{"US-10", "US-2", false},
		{"SPRINT-001", "SPRINT-001", false},
		{"alpha", "beta", true}, // no numeric part, lexicographic
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareIDs(tt.id1, tt.id2), "CompareIDs(%q, %q)", tt.id1, tt.id2)
	}
}

func TestNextStoryID(t *testing.T) {
	p := &Project{}
	assert.Equal(t, "US-001", p.NextStoryID())

	p.Backlog = []Item{
		{ID: "US-001"},
		{ID: "US-007"},
		{ID: "TASK-020"}, // different prefix, ignored
		{ID: "US-003"},
	}
	assert.Equal(t, "US-008", p.NextStoryID(), "must scan max, not count entries")
}

func TestNextStoryIDSkipsDeleted(t *testing.T) {
	// US-001 and US-002 were deleted; the highest surviving ID wins.
	p := &Project{Backlog: []Item{{ID: "US-004"}}}
	assert.Equal(t, "US-005", p.NextStoryID())
}

func TestNextSprintID(t *testing.T) {
	p := &Project{}
	assert.Equal(t, "SPRINT-001", p.NextSprintID())

	p.Sprints = []Sprint{{ID: "SPRINT-002"}}
	assert.Equal(t, "SPRINT-003", p.NextSprintID())
}
