package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// UpdateTodoTool handles the update_todo MCP tool.
// Only the supplied fields change; an absent field means "leave as is".
type UpdateTodoTool struct {
	engine *planner.Engine
}

// NewUpdateTodoTool creates an UpdateTodoTool with the given engine.
func NewUpdateTodoTool(engine *planner.Engine) *UpdateTodoTool {
	return &UpdateTodoTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTodoTool) Definition() mcp.Tool {
	return mcp.NewTool("update_todo",
		mcp.WithDescription(
			"Update fields of an existing todo. Fields not supplied are left "+
				"unchanged; updatedAt is always refreshed.",
		),
		mcp.WithString("todoId",
			mcp.Required(),
			mcp.Description("Id of the todo to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("status",
			mcp.Description("New workflow status"),
			mcp.Enum("pending", "in-progress", "completed"),
		),
		mcp.WithString("priority",
			mcp.Description("New priority"),
			mcp.Enum("low", "medium", "high"),
		),
	)
}

// Handle processes the update_todo tool call.
func (t *UpdateTodoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todoID := req.GetString("todoId", "")
	if strings.TrimSpace(todoID) == "" {
		return mcp.NewToolResultError("'todoId' is required"), nil
	}

	var update planner.TodoUpdate
	if title, ok := optString(req, "title"); ok {
		update.Title = &title
	}
	if description, ok := optString(req, "description"); ok {
		update.Description = &description
	}
	if status, ok := optString(req, "status"); ok {
		s := planner.Status(status)
		if err := planner.ValidateStatus(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		update.Status = &s
	}
	if priority, ok := optString(req, "priority"); ok {
		p := planner.Priority(priority)
		if err := planner.ValidatePriority(p); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		update.Priority = &p
	}

	todo, err := t.engine.UpdateTodo(ctx, todoID, update)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(todo)
}
