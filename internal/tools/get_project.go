package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	engine *planner.Engine
}

// NewGetProjectTool creates a GetProjectTool with the given engine.
func NewGetProjectTool(engine *planner.Engine) *GetProjectTool {
	return &GetProjectTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Get a project by id, together with all of its todos."),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Id of the project to fetch"),
		),
	)
}

// projectWithTodos is the get_project payload shape.
type projectWithTodos struct {
	Project *planner.Project `json:"project"`
	Todos   []planner.Todo   `json:"todos"`
}

// Handle processes the get_project tool call.
func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("projectId", "")
	if strings.TrimSpace(projectID) == "" {
		return mcp.NewToolResultError("'projectId' is required"), nil
	}

	project, todos, err := t.engine.GetProject(ctx, projectID)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(projectWithTodos{Project: project, Todos: todos})
}
