// Package suggest parses LLM responses into structured suggestions.
//
// The structured path expects strict JSON matching the contracts in the
// prompt templates. When a response is not valid JSON the heuristic
// fallbacks in text.go and codeblocks.go take over.
package suggest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the suggestion union.
type Kind string

const (
	KindDependency Kind = "dependency"
	KindFile       Kind = "file"
	KindAdvice     Kind = "advice"
)

// Action is a file operation requested by a file suggestion.
type Action string

const (
	ActionCreate           Action = "create"
	ActionReplace          Action = "replace"
	ActionAppend           Action = "append"
	ActionAddImport        Action = "add_import"
	ActionReplaceFunction  Action = "replace_function"
	ActionAppendToFunction Action = "append_to_function"
)

// Advisory reports whether the action is only shown to the user rather
// than applied. Function-level edits need tooling this CLI does not have.
func (a Action) Advisory() bool {
	return a == ActionReplaceFunction || a == ActionAppendToFunction
}

func (a Action) known() bool {
	switch a {
	case ActionCreate, ActionReplace, ActionAppend, ActionAddImport,
		ActionReplaceFunction, ActionAppendToFunction:
		return true
	}
	return false
}

// Suggestion is one entry of an assist response. Which fields are set
// depends on Type.
type Suggestion struct {
	Type Kind `json:"type"`

	// dependency
	DependencyLines []string `json:"dependency_lines,omitempty"`

	// file
	TargetFile      string `json:"target_file,omitempty"`
	Action          Action `json:"action,omitempty"`
	Content         string `json:"content,omitempty"`
	FunctionName    string `json:"function_name,omitempty"`
	ImportStatement string `json:"import_statement,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// AssistResponse is the top-level structure expected from the task
// assistant prompt.
type AssistResponse struct {
	Suggestions    []Suggestion `json:"suggestions"`
	OverallSummary string       `json:"overall_summary"`
}

// Dependencies returns all dependency lines across dependency suggestions.
func (r *AssistResponse) Dependencies() []string {
	var lines []string
	for _, s := range r.Suggestions {
		if s.Type == KindDependency {
			lines = append(lines, s.DependencyLines...)
		}
	}
	return lines
}

// Files returns the file suggestions in response order.
func (r *AssistResponse) Files() []Suggestion {
	var files []Suggestion
	for _, s := range r.Suggestions {
		if s.Type == KindFile {
			files = append(files, s)
		}
	}
	return files
}

// Advice returns the advice contents plus any notes attached to other
// suggestion kinds, in response order.
func (r *AssistResponse) Advice() []string {
	var advice []string
	for _, s := range r.Suggestions {
		switch s.Type {
		case KindAdvice:
			advice = append(advice, s.Content)
			if s.Notes != "" {
				advice = append(advice, "Note: "+s.Notes)
			}
		case KindDependency:
			if s.Notes != "" {
				advice = append(advice, "Dependency notes: "+s.Notes)
			}
		}
	}
	return advice
}

// ParseAssistResponse parses the task assistant JSON contract. Fence
// wrappers around the JSON are tolerated; structural violations are not.
func ParseAssistResponse(raw string) (*AssistResponse, error) {
	cleaned := StripFences(raw)

	var probe struct {
		Suggestions    *[]Suggestion `json:"suggestions"`
		OverallSummary string        `json:"overall_summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("response is not valid suggestion JSON: %w (starts with %q)", err, snippet(cleaned, 120))
	}
	if probe.Suggestions == nil {
		return nil, fmt.Errorf("response JSON is missing the \"suggestions\" field")
	}

	resp := &AssistResponse{
		Suggestions:    *probe.Suggestions,
		OverallSummary: probe.OverallSummary,
	}
	for i, s := range resp.Suggestions {
		if err := validateSuggestion(s); err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i+1, err)
		}
	}
	return resp, nil
}

func validateSuggestion(s Suggestion) error {
	switch s.Type {
	case KindDependency:
		if len(s.DependencyLines) == 0 {
			return fmt.Errorf("dependency suggestion has no dependency_lines")
		}
	case KindFile:
		if s.TargetFile == "" {
			return fmt.Errorf("file suggestion has no target_file")
		}
		if !s.Action.known() {
			return fmt.Errorf("file suggestion for %s has unknown action %q", s.TargetFile, s.Action)
		}
	case KindAdvice:
		if s.Content == "" {
			return fmt.Errorf("advice suggestion has no content")
		}
	default:
		return fmt.Errorf("unknown suggestion type %q", s.Type)
	}
	return nil
}

// StripFences removes a surrounding markdown code fence and any prose
// before or after the outermost JSON object. Models routinely wrap their
// JSON despite being told not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	if !strings.HasPrefix(s, "{") {
		start := strings.IndexByte(s, '{')
		end := strings.LastIndexByte(s, '}')
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}
	return s
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
