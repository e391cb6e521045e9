package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	engine *planner.Engine
}

// NewDeleteProjectTool creates a DeleteProjectTool with the given engine.
func NewDeleteProjectTool(engine *planner.Engine) *DeleteProjectTool {
	return &DeleteProjectTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription(
			"Delete a project and all of its todos. This cascade cannot be undone.",
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Id of the project to delete"),
		),
	)
}

// Handle processes the delete_project tool call.
func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	if strings.TrimSpace(projectID) == "" {
		return mcp.NewToolResultError("'projectId' is required"), nil
	}

	if err := t.engine.DeleteProject(ctx, projectID); err != nil {
		return engineResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted project %q and its todos.", projectID)), nil
}
