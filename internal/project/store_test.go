package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcoach/devcoach/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	p := New("roundtrip", "A test project", nil)
	sprint := "SPRINT-001"
	p.Backlog = append(p.Backlog, Item{
		ID:                 "US-001",
		Type:               TypeUserStory,
		Title:              "First story",
		Story:              "As a user, I want round trips",
		AcceptanceCriteria: []string{"stores", "loads"},
		Priority:           PriorityHigh,
		Effort:             3,
		Status:             StatusTodo,
		Created:            p.Meta.Created,
		Sprint:             &sprint,
	})
	require.NoError(t, p.Save())

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.Meta.Name)
	require.Len(t, loaded.Backlog, 1)
	assert.Equal(t, "US-001", loaded.Backlog[0].ID)
	assert.Equal(t, PriorityHigh, loaded.Backlog[0].Priority)
	require.NotNil(t, loaded.Backlog[0].Sprint)
	assert.Equal(t, "SPRINT-001", *loaded.Backlog[0].Sprint)

	// Stable output: saving the loaded document reproduces the file
	before, err := os.ReadFile(FileName)
	require.NoError(t, err)
	require.NoError(t, loaded.Save())
	after, err := os.ReadFile(FileName)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSaveEndsWithNewline(t *testing.T) {
	chdir(t, t.TempDir())

	p := New("newline", "desc", nil)
	require.NoError(t, p.Save())

	data, err := os.ReadFile(FileName)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devcoach init")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadPath(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"missing meta",
			`{"backlog": [], "sprints": []}`,
		},
		{
			"bad item status",
			`{"meta": {"name": "x", "description": "", "created": "2025-01-01T00:00:00Z",
			  "tech_stack": [], "tags": []},
			  "backlog": [{"id": "US-001", "type": "user_story", "title": "t",
			  "story": "s", "priority": "high", "effort": 1, "status": "paused"}],
			  "sprints": []}`,
		},
		{
			"bad priority",
			`{"meta": {"name": "x", "description": "", "created": "2025-01-01T00:00:00Z",
			  "tech_stack": [], "tags": []},
			  "backlog": [{"id": "US-001", "type": "user_story", "title": "t",
			  "story": "s", "priority": "urgent", "effort": 1, "status": "todo"}],
			  "sprints": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "project.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0644))

			_, err := LoadPath(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema violation")
		})
	}
}

func TestLoadResolvesLLMConfig(t *testing.T) {
	chdir(t, t.TempDir())

	p := New("resolved", "desc", nil)
	p.Meta.LLM = &config.LLMSettings{Model: "project-model"}
	require.NoError(t, p.Save())

	global := &config.LLMSettings{Host: "globalhost"}
	loaded, err := Load(global)
	require.NoError(t, err)

	r := loaded.LLM()
	assert.Equal(t, "project-model", r.Model)
	assert.Equal(t, config.SourceProject, r.ModelSource)
	assert.Equal(t, "globalhost", r.Host)
	assert.Equal(t, config.SourceGlobal, r.HostSource)
	assert.Equal(t, config.DefaultLLMPort, r.Port)
}

func TestExists(t *testing.T) {
	chdir(t, t.TempDir())
	assert.False(t, Exists())

	require.NoError(t, New("exists", "d", nil).Save())
	assert.True(t, Exists())
}

func TestCreateInCurrentDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	p, err := CreateInCurrentDir(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), p.Meta.Name)
	assert.Equal(t, "Generated project", p.Meta.Description)
	assert.True(t, Exists())

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, p.Meta.Name, loaded.Meta.Name)
}
