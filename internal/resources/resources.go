// Package resources implements MCP resource handlers for the planner.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (planner://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// Handler manages planner resource endpoints.
type Handler struct {
	engine *planner.Engine
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(engine *planner.Engine) *Handler {
	return &Handler{engine: engine}
}

// StatusResource returns the MCP resource definition for planner status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"planner://status",
		"Planner Status",
		mcp.WithResourceDescription("Projects with their todo counts, as seen by the current caller"),
		mcp.WithMIMEType("application/json"),
	)
}

// status is the planner://status payload shape.
type status struct {
	ProjectCount int             `json:"projectCount"`
	TodoCount    int             `json:"todoCount"`
	Projects     []projectStatus `json:"projects"`
}

type projectStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Todos int    `json:"todos"`
}

// HandleStatus returns a summary of all projects and their todos.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := h.engine.ListProjects(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	st := status{Projects: make([]projectStatus, 0, len(projects))}
	st.ProjectCount = len(projects)
	for _, p := range projects {
		todos, err := h.engine.ListTodos(ctx, p.ID, "")
		if err != nil {
			return errorResource(req.Params.URI, err.Error()), nil
		}
		st.TodoCount += len(todos)
		st.Projects = append(st.Projects, projectStatus{ID: p.ID, Name: p.Name, Todos: len(todos)})
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
