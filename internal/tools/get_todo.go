package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// GetTodoTool handles the get_todo MCP tool.
type GetTodoTool struct {
	engine *planner.Engine
}

// NewGetTodoTool creates a GetTodoTool with the given engine.
func NewGetTodoTool(engine *planner.Engine) *GetTodoTool {
	return &GetTodoTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTodoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_todo",
		mcp.WithDescription("Get a single todo by id."),
		mcp.WithString("todoId",
			mcp.Required(),
			mcp.Description("Id of the todo to fetch"),
		),
	)
}

// Handle processes the get_todo tool call.
func (t *GetTodoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todoID := req.GetString("todoId", "")
	if strings.TrimSpace(todoID) == "" {
		return mcp.NewToolResultError("'todoId' is required"), nil
	}

	todo, err := t.engine.GetTodo(ctx, todoID)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(todo)
}
