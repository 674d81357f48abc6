package suggest

import (
	"encoding/json"
	"fmt"
)

// SprintPlan is the sprint planner prompt's selection.
type SprintPlan struct {
	ItemIDs   []string `json:"item_ids"`
	Rationale string   `json:"rationale"`
}

// ParseSprintResponse parses the sprint planner JSON contract. Fence
// wrappers are tolerated.
func ParseSprintResponse(raw string) (*SprintPlan, error) {
	cleaned := StripFences(raw)

	var probe struct {
		Sprint *SprintPlan `json:"sprint"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("response is not valid sprint JSON: %w (starts with %q)", err, snippet(cleaned, 120))
	}
	if probe.Sprint == nil {
		return nil, fmt.Errorf("response JSON is missing the \"sprint\" field")
	}
	if len(probe.Sprint.ItemIDs) == 0 {
		return nil, fmt.Errorf("sprint plan selected no items")
	}
	return probe.Sprint, nil
}
