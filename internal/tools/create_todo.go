package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// CreateTodoTool handles the create_todo MCP tool.
type CreateTodoTool struct {
	engine *planner.Engine
}

// NewCreateTodoTool creates a CreateTodoTool with the given engine.
func NewCreateTodoTool(engine *planner.Engine) *CreateTodoTool {
	return &CreateTodoTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTodoTool) Definition() mcp.Tool {
	return mcp.NewTool("create_todo",
		mcp.WithDescription(
			"Create a todo in an existing project. New todos always start "+
				"with status 'pending'.",
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Id of the project the todo belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title of the todo"),
		),
		mcp.WithString("description",
			mcp.Description("Longer description (defaults to empty)"),
		),
		mcp.WithString("priority",
			mcp.Description("Urgency level (defaults to medium)"),
			mcp.Enum("low", "medium", "high"),
		),
	)
}

// Handle processes the create_todo tool call.
func (t *CreateTodoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	if strings.TrimSpace(projectID) == "" {
		return mcp.NewToolResultError("'projectId' is required"), nil
	}
	title := req.GetString("title", "")
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	description := req.GetString("description", "")

	priority := planner.Priority(req.GetString("priority", ""))
	if priority != "" {
		if err := planner.ValidatePriority(priority); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	todo, err := t.engine.CreateTodo(ctx, projectID, title, description, priority)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(todo)
}
