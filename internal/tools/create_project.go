package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	engine *planner.Engine
}

// NewCreateProjectTool creates a CreateProjectTool with the given engine.
func NewCreateProjectTool(engine *planner.Engine) *CreateProjectTool {
	return &CreateProjectTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription(
			"Create a new project. Returns the created project record, "+
				"including its generated id, which todo tools reference as projectId.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What the project is about"),
		),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	description := req.GetString("description", "")

	project, err := t.engine.CreateProject(ctx, name, description)
	if err != nil {
		return engineResult(err)
	}
	return jsonResult(project)
}
