package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcoach/devcoach/internal/project"
)

// setupTestServer chdirs into a temp dir with a fresh project.json.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	_, err = project.CreateInCurrentDir(nil)
	require.NoError(t, err)
	return New(nil)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func TestHandleStoryAdd(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleStoryAdd(context.Background(), callRequest("story-add", map[string]any{
		"title":               "User login",
		"story":               "As a user, I want to log in so that my data is private",
		"priority":            "high",
		"effort":              float64(5),
		"acceptance_criteria": []any{"Login form exists"},
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, extractText(result), "Added US-001")

	proj, err := project.Load(nil)
	require.NoError(t, err)
	require.Len(t, proj.Backlog, 1)
	assert.Equal(t, project.PriorityHigh, proj.Backlog[0].Priority)
	assert.Equal(t, 5, proj.Backlog[0].Effort)
}

func TestHandleStoryAddMissingTitle(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleStoryAdd(context.Background(), callRequest("story-add", map[string]any{
		"story": "As a user, I want something",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleBacklogList(t *testing.T) {
	srv := setupTestServer(t)

	for _, title := range []string{"First", "Second"} {
		result, err := srv.handleStoryAdd(context.Background(), callRequest("story-add", map[string]any{
			"title": title,
			"story": "As a user, I want " + title,
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	result, err := srv.handleBacklogList(context.Background(), callRequest("backlog-list", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var items []project.Item
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &items))
	assert.Len(t, items, 2)
}

func TestHandleBacklogListStatusFilter(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleStoryAdd(context.Background(), callRequest("story-add", map[string]any{
		"title": "Only story",
		"story": "As a user, I want one thing",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = srv.handleBacklogList(context.Background(), callRequest("backlog-list", map[string]any{
		"status": "done",
	}))
	require.NoError(t, err)

	var items []project.Item
	require.NoError(t, json.Unmarshal([]byte(extractText(result)), &items))
	assert.Empty(t, items)
}

func TestHandleTaskStatus(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleStoryAdd(context.Background(), callRequest("story-add", map[string]any{
		"title": "Story",
		"story": "As a user, I want progress",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = srv.handleTaskStatus(context.Background(), callRequest("task-status", map[string]any{
		"id":     "US-001",
		"status": "in_progress",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, extractText(result), "US-001 is now in_progress")

	proj, err := project.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, project.StatusInProgress, proj.Backlog[0].Status)
}

func TestHandleTaskStatusUnknownItem(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleTaskStatus(context.Background(), callRequest("task-status", map[string]any{
		"id":     "US-404",
		"status": "done",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "not found")
}

func TestHandleTaskStatusInvalidStatus(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleTaskStatus(context.Background(), callRequest("task-status", map[string]any{
		"id":     "US-001",
		"status": "paused",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), `unknown status "paused"`)
}

func TestServerStartStop(t *testing.T) {
	srv := setupTestServer(t)

	port, err := srv.Start(context.Background(), 0)
	require.NoError(t, err)
	assert.Greater(t, port, 0)
	assert.Contains(t, srv.URL(), "/mcp")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop()) // idempotent
}
