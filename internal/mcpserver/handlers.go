package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devcoach/devcoach/internal/project"
)

// registerTools registers the backlog tools with the MCP server.
func (s *Server) registerTools() error {
	s.mcpServer.AddTool(
		mcp.NewTool("backlog-list",
			mcp.WithDescription("List backlog items, optionally filtered by status"),
			mcp.WithString("status",
				mcp.Description("Filter by status: todo, in_progress, review, done"),
			),
		),
		s.handleBacklogList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("story-add",
			mcp.WithDescription("Add a user story to the backlog"),
			mcp.WithString("title", mcp.Required(),
				mcp.Description("Short story title"),
			),
			mcp.WithString("story", mcp.Required(),
				mcp.Description("Story text in 'As a ..., I want ... so that ...' form"),
			),
			mcp.WithString("priority",
				mcp.Description("Priority: critical, high, medium, low (default medium)"),
			),
			mcp.WithNumber("effort",
				mcp.Description("Effort estimate in points (default 3)"),
			),
			mcp.WithArray("acceptance_criteria",
				mcp.Description("Acceptance criteria, one string per criterion"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleStoryAdd,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-status",
			mcp.WithDescription("Update the status of a backlog item"),
			mcp.WithString("id", mcp.Required(),
				mcp.Description("Backlog item ID, e.g. US-001"),
			),
			mcp.WithString("status", mcp.Required(),
				mcp.Description("New status: todo, in_progress, review, done"),
			),
		),
		s.handleTaskStatus,
	)

	return nil
}

// handleBacklogList lists backlog items as JSON.
func (s *Server) handleBacklogList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	proj, err := project.Load(s.global)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load project: %v", err)), nil
	}

	statusFilter := ""
	if args := request.GetArguments(); args != nil {
		if v, ok := args["status"].(string); ok {
			statusFilter = v
		}
	}

	items := make([]project.Item, 0, len(proj.Backlog))
	for _, item := range proj.Backlog {
		if statusFilter != "" && string(item.Status) != statusFilter {
			continue
		}
		items = append(items, item)
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal backlog: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleStoryAdd appends a user story and saves the project.
func (s *Server) handleStoryAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("missing or empty 'title' parameter"), nil
	}
	story, ok := args["story"].(string)
	if !ok || story == "" {
		return mcp.NewToolResultError("missing or empty 'story' parameter"), nil
	}

	priority := project.PriorityMedium
	if v, ok := args["priority"].(string); ok && v != "" {
		parsed, recognized := project.ParsePriority(v)
		if !recognized {
			return mcp.NewToolResultError(fmt.Sprintf("unknown priority %q", v)), nil
		}
		priority = parsed
	}

	// JSON numbers come as float64.
	effort := 3
	if v, ok := args["effort"].(float64); ok {
		effort = int(v)
	}

	var criteria []string
	if raw, ok := args["acceptance_criteria"].([]any); ok {
		for i, cRaw := range raw {
			c, ok := cRaw.(string)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("acceptance criterion %d is not a string", i)), nil
			}
			criteria = append(criteria, c)
		}
	}

	proj, err := project.Load(s.global)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load project: %v", err)), nil
	}

	item := project.Item{
		ID:                 proj.NextStoryID(),
		Type:               project.TypeUserStory,
		Title:              title,
		Story:              story,
		AcceptanceCriteria: criteria,
		Priority:           priority,
		Effort:             effort,
		Status:             project.StatusTodo,
		Created:            time.Now().UTC(),
	}
	proj.Backlog = append(proj.Backlog, item)

	if err := proj.Save(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save project: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %s: %s", item.ID, item.Title)), nil
}

// handleTaskStatus updates one item's status and saves the project.
func (s *Server) handleTaskStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("missing or empty 'id' parameter"), nil
	}
	statusRaw, ok := args["status"].(string)
	if !ok || statusRaw == "" {
		return mcp.NewToolResultError("missing or empty 'status' parameter"), nil
	}
	status := project.Status(statusRaw)
	switch status {
	case project.StatusTodo, project.StatusInProgress, project.StatusReview, project.StatusDone:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", statusRaw)), nil
	}

	proj, err := project.Load(s.global)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load project: %v", err)), nil
	}

	item := proj.Item(id)
	if item == nil {
		return mcp.NewToolResultError(fmt.Sprintf("item %s not found", id)), nil
	}
	item.Status = status

	if err := proj.Save(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save project: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s is now %s", id, status)), nil
}
