package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// ListTodosTool handles the list_todos MCP tool.
type ListTodosTool struct {
	engine *planner.Engine
}

// NewListTodosTool creates a ListTodosTool with the given engine.
func NewListTodosTool(engine *planner.Engine) *ListTodosTool {
	return &ListTodosTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTodosTool) Definition() mcp.Tool {
	return mcp.NewTool("list_todos",
		mcp.WithDescription(
			"List a project's todos in creation order, optionally filtered by status.",
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Id of the project whose todos to list"),
		),
		mcp.WithString("status",
			mcp.Description("Only return todos with this status"),
			mcp.Enum("pending", "in-progress", "completed"),
		),
	)
}

// Handle processes the list_todos tool call.
func (t *ListTodosTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	if strings.TrimSpace(projectID) == "" {
		return mcp.NewToolResultError("'projectId' is required"), nil
	}

	status := planner.Status(req.GetString("status", ""))
	if status != "" {
		if err := planner.ValidateStatus(status); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	todos, err := t.engine.ListTodos(ctx, projectID, status)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(todos)
}
