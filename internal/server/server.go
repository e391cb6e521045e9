// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it loads configuration, picks the kv
// backend, builds the planner engine with its authorization policy,
// and registers the tools and resources. No business logic lives here —
// only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/plankeep/plankeep/internal/auth"
	"github.com/plankeep/plankeep/internal/config"
	"github.com/plankeep/plankeep/internal/kv"
	"github.com/plankeep/plankeep/internal/logging"
	"github.com/plankeep/plankeep/internal/planner"
	"github.com/plankeep/plankeep/internal/resources"
	"github.com/plankeep/plankeep/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all planner tools and
// resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the kv backend and must be
// called on shutdown (typically via defer). It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, noop, fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.LogLevel)

	// --- Pick the kv backend ---

	var store kv.Store
	cleanup := noop
	switch cfg.Backend {
	case config.BackendMemory:
		store = kv.NewMemory()
		log.Warn("using in-memory backend; planner state will not survive restarts")
	default:
		sqliteStore, err := kv.OpenSQLite(cfg.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("opening sqlite backend: %w", err)
		}
		store = sqliteStore
		cleanup = func() {
			if err := sqliteStore.Close(); err != nil {
				log.Warn("closing sqlite backend", "error", err)
			}
		}
		log.Info("sqlite backend ready", "data_dir", cfg.DataDir)
	}

	// --- Authorization policy ---

	var policy auth.Policy = auth.AllowAll{}
	if len(cfg.AllowedCallers) > 0 {
		policy = auth.NewAllowlist(cfg.AllowedCallers)
	}

	engine := planner.NewEngine(store, policy, cfg.MultiTenant)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"plankeep",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register planner tools ---

	createProject := tools.NewCreateProjectTool(engine)
	s.AddTool(createProject.Definition(), createProject.Handle)

	listProjects := tools.NewListProjectsTool(engine)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	getProject := tools.NewGetProjectTool(engine)
	s.AddTool(getProject.Definition(), getProject.Handle)

	deleteProject := tools.NewDeleteProjectTool(engine)
	s.AddTool(deleteProject.Definition(), deleteProject.Handle)

	createTodo := tools.NewCreateTodoTool(engine)
	s.AddTool(createTodo.Definition(), createTodo.Handle)

	updateTodo := tools.NewUpdateTodoTool(engine)
	s.AddTool(updateTodo.Definition(), updateTodo.Handle)

	getTodo := tools.NewGetTodoTool(engine)
	s.AddTool(getTodo.Definition(), getTodo.Handle)

	deleteTodo := tools.NewDeleteTodoTool(engine)
	s.AddTool(deleteTodo.Definition(), deleteTodo.Handle)

	listTodos := tools.NewListTodosTool(engine)
	s.AddTool(listTodos.Definition(), listTodos.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when there is nothing to close.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the planner effectively.
func serverInstructions() string {
	return `You have access to plankeep, a project planner.

Projects group todos. Every todo belongs to exactly one project and is
created through create_todo with that project's id.

## Typical workflow
1. create_project(name, description) — returns the project record; keep its id
2. create_todo(projectId, title, [description], [priority]) — new todos
   always start as status "pending"; priority defaults to "medium"
3. update_todo(todoId, ...) — change only the fields you pass; status moves
   freely between pending, in-progress and completed
4. list_todos(projectId, [status]) — todos in creation order, optionally
   filtered by status
5. delete_project(projectId) — deletes the project AND all of its todos

## Rules
- Always use ids returned by the tools; never invent ids
- get_project returns the project together with all its todos
- delete_project cascades — confirm with the user before calling it
- Deleting the same todo twice fails with "not found" on the second call`
}
