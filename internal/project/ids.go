package project

import (
	"fmt"
	"strconv"
	"strings"
)

// ID prefixes for generated backlog items and sprints.
const (
	StoryIDPrefix  = "US-"
	TaskIDPrefix   = "TASK-"
	SprintIDPrefix = "SPRINT-"
)

// idNumber extracts the numeric suffix from an ID like "US-012".
// Returns -1 when the ID has no numeric part.
func idNumber(id string) int {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == len(id) {
		return -1
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return -1
	}
	return n
}

// CompareIDs reports whether id1 sorts before id2 using numeric-aware
// ordering: "US-2" before "US-10". Falls back to lexicographic order when
// either ID lacks a numeric part.
func CompareIDs(id1, id2 string) bool {
	k1 := idNumber(id1)
	k2 := idNumber(id2)
	if k1 >= 0 && k2 >= 0 {
		return k1 < k2
	}
	return id1 < id2
}

// nextID allocates the next sequential ID with the given prefix. It scans for
// the highest existing number rather than counting entries, so IDs are never
// reused after deletions.
func nextID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if n := idNumber(id); n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// NextStoryID allocates the next user-story ID (US-001, US-002, ...).
func (p *Project) NextStoryID() string {
	return nextID(StoryIDPrefix, p.backlogIDs())
}

// NextSprintID allocates the next sprint ID (SPRINT-001, ...).
func (p *Project) NextSprintID() string {
	ids := make([]string, 0, len(p.Sprints))
	for _, s := range p.Sprints {
		ids = append(ids, s.ID)
	}
	return nextID(SprintIDPrefix, ids)
}

func (p *Project) backlogIDs() []string {
	ids := make([]string, 0, len(p.Backlog))
	for _, it := range p.Backlog {
		ids = append(ids, it.ID)
	}
	return ids
}
