package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	engine *planner.Engine
}

// NewListProjectsTool creates a ListProjectsTool with the given engine.
func NewListProjectsTool(engine *planner.Engine) *ListProjectsTool {
	return &ListProjectsTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects in creation order."),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.engine.ListProjects(ctx)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(projects)
}
