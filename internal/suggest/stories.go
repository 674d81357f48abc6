package suggest

import (
	"encoding/json"
	"fmt"
)

// Story is one user story as produced by the requirements analyst prompt.
type Story struct {
	Title              string   `json:"title"`
	Story              string   `json:"story"`
	Priority           string   `json:"priority"`
	Effort             int      `json:"effort"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// ParseStoryResponse parses the requirements analyst JSON contract.
// Fence wrappers are tolerated. A response without a "user_stories"
// field is an error so the caller can fall back to text extraction.
func ParseStoryResponse(raw string) ([]Story, error) {
	cleaned := StripFences(raw)

	var probe struct {
		UserStories *[]Story `json:"user_stories"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("response is not valid story JSON: %w (starts with %q)", err, snippet(cleaned, 120))
	}
	if probe.UserStories == nil {
		return nil, fmt.Errorf("response JSON is missing the \"user_stories\" field")
	}
	return *probe.UserStories, nil
}
