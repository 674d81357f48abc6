package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAssist = `{
	"suggestions": [
		{
			"type": "dependency",
			"dependency_lines": ["serde = \"1.0\""],
			"notes": "For serialization"
		},
		{
			"type": "file",
			"target_file": "src/main.rs",
			"action": "create",
			"content": "fn main() {}",
			"notes": "Main function"
		},
		{
			"type": "advice",
			"content": "Remember to test.",
			"notes": "Testing is important"
		}
	],
	"overall_summary": "Added serde, created main.rs, advised testing."
}`

func TestParseAssistResponse(t *testing.T) {
	resp, err := ParseAssistResponse(validAssist)
	require.NoError(t, err)

	assert.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "Added serde, created main.rs, advised testing.", resp.OverallSummary)

	assert.Equal(t, []string{`serde = "1.0"`}, resp.Dependencies())

	files := resp.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "src/main.rs", files[0].TargetFile)
	assert.Equal(t, ActionCreate, files[0].Action)
	assert.Equal(t, "fn main() {}", files[0].Content)

	advice := resp.Advice()
	require.Len(t, advice, 3)
	assert.Equal(t, "Dependency notes: For serialization", advice[0])
	assert.Equal(t, "Remember to test.", advice[1])
	assert.Equal(t, "Note: Testing is important", advice[2])
}

func TestParseAssistResponseFenced(t *testing.T) {
	fenced := "```json\n" + validAssist + "\n```"
	resp, err := ParseAssistResponse(fenced)
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 3)
}

func TestParseAssistResponseWithSurroundingProse(t *testing.T) {
	raw := "Here is my plan:\n" + validAssist + "\nHope that helps!"
	resp, err := ParseAssistResponse(raw)
	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 3)
}

func TestParseAssistResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "malformed json",
			raw:     `{"suggestions": [`,
			wantErr: "not valid suggestion JSON",
		},
		{
			name:    "missing suggestions field",
			raw:     `{"overall_summary": "nothing"}`,
			wantErr: `missing the "suggestions" field`,
		},
		{
			name:    "unknown type",
			raw:     `{"suggestions": [{"type": "magic", "content": "x"}]}`,
			wantErr: `unknown suggestion type "magic"`,
		},
		{
			name:    "unknown action",
			raw:     `{"suggestions": [{"type": "file", "target_file": "a.rs", "action": "explode"}]}`,
			wantErr: `unknown action "explode"`,
		},
		{
			name:    "dependency without lines",
			raw:     `{"suggestions": [{"type": "dependency"}]}`,
			wantErr: "no dependency_lines",
		},
		{
			name:    "file without target",
			raw:     `{"suggestions": [{"type": "file", "action": "create"}]}`,
			wantErr: "no target_file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAssistResponse(tt.raw)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseAssistResponseEmptySuggestions(t *testing.T) {
	resp, err := ParseAssistResponse(`{"suggestions": [], "overall_summary": "nothing to do"}`)
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, "nothing to do", resp.OverallSummary)
}

func TestActionAdvisory(t *testing.T) {
	assert.False(t, ActionCreate.Advisory())
	assert.False(t, ActionAddImport.Advisory())
	assert.True(t, ActionReplaceFunction.Advisory())
	assert.True(t, ActionAppendToFunction.Advisory())
}

func TestParseStoryResponse(t *testing.T) {
	raw := `{
		"user_stories": [
			{
				"title": "User login",
				"story": "As a user, I want to log in so that my data is private",
				"priority": "High",
				"effort": 3,
				"acceptance_criteria": ["Login form exists", "Sessions persist"]
			}
		]
	}`
	stories, err := ParseStoryResponse(raw)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "User login", stories[0].Title)
	assert.Equal(t, "High", stories[0].Priority)
	assert.Equal(t, 3, stories[0].Effort)
	assert.Len(t, stories[0].AcceptanceCriteria, 2)
}

func TestParseStoryResponseFenced(t *testing.T) {
	raw := "```json\n{\"user_stories\": []}\n```"
	stories, err := ParseStoryResponse(raw)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestParseStoryResponseMissingField(t *testing.T) {
	_, err := ParseStoryResponse(`{"stories": []}`)
	assert.ErrorContains(t, err, `missing the "user_stories" field`)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence no language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around json", "Sure!\n{\"a\": 1}\nDone.", `{"a": 1}`},
		{"no json at all", "no braces here", "no braces here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestParseSprintResponse(t *testing.T) {
	raw := "```json\n" + `{"sprint": {"item_ids": ["US-001", "US-003"], "rationale": "highest priority first"}}` + "\n```"
	plan, err := ParseSprintResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"US-001", "US-003"}, plan.ItemIDs)
	assert.Equal(t, "highest priority first", plan.Rationale)
}

func TestParseSprintResponseErrors(t *testing.T) {
	_, err := ParseSprintResponse(`{"plan": {}}`)
	assert.ErrorContains(t, err, `missing the "sprint" field`)

	_, err = ParseSprintResponse(`{"sprint": {"item_ids": []}}`)
	assert.ErrorContains(t, err, "selected no items")
}
