package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// DeleteTodoTool handles the delete_todo MCP tool.
type DeleteTodoTool struct {
	engine *planner.Engine
}

// NewDeleteTodoTool creates a DeleteTodoTool with the given engine.
func NewDeleteTodoTool(engine *planner.Engine) *DeleteTodoTool {
	return &DeleteTodoTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTodoTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_todo",
		mcp.WithDescription("Delete a single todo by id."),
		mcp.WithString("todoId",
			mcp.Required(),
			mcp.Description("Id of the todo to delete"),
		),
	)
}

// Handle processes the delete_todo tool call.
func (t *DeleteTodoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todoID := req.GetString("todoId", "")
	if strings.TrimSpace(todoID) == "" {
		return mcp.NewToolResultError("'todoId' is required"), nil
	}

	if err := t.engine.DeleteTodo(ctx, todoID); err != nil {
		return engineResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted todo %q.", todoID)), nil
}
