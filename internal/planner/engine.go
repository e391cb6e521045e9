package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plankeep/plankeep/internal/auth"
	"github.com/plankeep/plankeep/internal/kv"
)

// Engine implements the planner operations over a kv.Store and an
// Index. Operations are not transactional: each one is a fixed
// sequence of single-key steps, ordered so that a failure partway
// through leaves at worst a phantom index entry (tolerated by the
// self-healing reads) and never an unreachable record. Those orderings
// are load-bearing — do not reorder them.
type Engine struct {
	store       kv.Store
	index       *Index
	policy      auth.Policy
	multiTenant bool

	// Injected for tests.
	now   func() time.Time
	newID func() string
}

// NewEngine creates an Engine. policy decides which callers may use
// the planner; when multiTenant is true every caller gets its own key
// namespace and cross-owner records are never visible.
func NewEngine(store kv.Store, policy auth.Policy, multiTenant bool) *Engine {
	return &Engine{
		store:       store,
		index:       NewIndex(store),
		policy:      policy,
		multiTenant: multiTenant,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// owner resolves the caller identity on ctx into a key namespace.
// Single-tenant mode maps every caller to the empty namespace.
func (e *Engine) owner(ctx context.Context) (string, error) {
	caller := auth.CallerFromContext(ctx)
	if !e.policy.Authorize(caller) {
		return "", ErrUnauthorized
	}
	if !e.multiTenant {
		return "", nil
	}
	if strings.Contains(caller, keySep) {
		return "", fmt.Errorf("caller %q: %w", caller, ErrInvalidOwner)
	}
	return caller, nil
}

// ─── Projects ────────────────────────────────────────────────────────────────

// CreateProject creates a project and registers it in the project
// index. Record before index: if the append fails the record is an
// orphan, invisible to listings but never a dangling index entry.
func (e *Engine) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	project := &Project{
		ID:          e.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.putProject(ctx, owner, project); err != nil {
		return nil, err
	}
	if err := e.index.Append(ctx, projectIndexKey(owner), project.ID); err != nil {
		return nil, fmt.Errorf("indexing project %q: %w", project.ID, err)
	}
	return project, nil
}

// ListProjects returns all projects in creation order. Ids in the
// index whose record is missing are silently skipped.
func (e *Engine) ListProjects(ctx context.Context) ([]Project, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := e.index.Load(ctx, projectIndexKey(owner))
	if err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(ids))
	for _, id := range ids {
		project, err := e.loadProject(ctx, owner, id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, nil
}

// GetProject returns a project and all its todos. Fails with NotFound
// when the project record is absent.
func (e *Engine) GetProject(ctx context.Context, id string) (*Project, []Todo, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, nil, err
	}

	project, err := e.loadProject(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}
	todos, err := e.loadTodosByProject(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}
	return project, todos, nil
}

// DeleteProject deletes a project and cascades to its todos. Order:
// todo records, todo index key, project record, then the project's
// entry in the project index. A crash mid-sequence leaves at worst a
// stale index entry, never a todo pointing at a live-but-orphaned
// project.
func (e *Engine) DeleteProject(ctx context.Context, id string) error {
	owner, err := e.owner(ctx)
	if err != nil {
		return err
	}

	if _, err := e.loadProject(ctx, owner, id); err != nil {
		return err
	}

	todoIDs, err := e.index.Load(ctx, todoIndexKey(owner, id))
	if err != nil {
		return err
	}
	for _, todoID := range todoIDs {
		if err := e.store.Delete(ctx, todoKey(owner, todoID)); err != nil {
			return fmt.Errorf("deleting todo %q: %w", todoID, err)
		}
	}
	if err := e.store.Delete(ctx, todoIndexKey(owner, id)); err != nil {
		return fmt.Errorf("deleting todo index for project %q: %w", id, err)
	}
	if err := e.store.Delete(ctx, projectKey(owner, id)); err != nil {
		return fmt.Errorf("deleting project %q: %w", id, err)
	}
	if err := e.index.Remove(ctx, projectIndexKey(owner), id); err != nil {
		return fmt.Errorf("unindexing project %q: %w", id, err)
	}
	return nil
}

// ─── Todos ───────────────────────────────────────────────────────────────────

// CreateTodo creates a todo in an existing project. Description
// defaults to empty, priority to medium; status is always pending.
// Fails with NotFound before any write when the project is absent.
func (e *Engine) CreateTodo(ctx context.Context, projectID, title, description string, priority Priority) (*Todo, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := e.loadProject(ctx, owner, projectID); err != nil {
		return nil, err
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	now := e.now()
	todo := &Todo{
		ID:          e.newID(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.putTodo(ctx, owner, todo); err != nil {
		return nil, err
	}
	if err := e.index.Append(ctx, todoIndexKey(owner, projectID), todo.ID); err != nil {
		return nil, fmt.Errorf("indexing todo %q: %w", todo.ID, err)
	}
	return todo, nil
}

// TodoUpdate holds a partial todo update. Nil fields are left
// unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// UpdateTodo applies the supplied fields to an existing todo,
// refreshes updatedAt and rewrites the full record.
func (e *Engine) UpdateTodo(ctx context.Context, id string, update TodoUpdate) (*Todo, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}

	todo, err := e.loadTodo(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Description != nil {
		todo.Description = *update.Description
	}
	if update.Status != nil {
		if err := ValidateStatus(*update.Status); err != nil {
			return nil, err
		}
		todo.Status = *update.Status
	}
	if update.Priority != nil {
		if err := ValidatePriority(*update.Priority); err != nil {
			return nil, err
		}
		todo.Priority = *update.Priority
	}
	todo.UpdatedAt = e.now()

	if err := e.putTodo(ctx, owner, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// GetTodo returns a todo by id, NotFound when absent.
func (e *Engine) GetTodo(ctx context.Context, id string) (*Todo, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}
	return e.loadTodo(ctx, owner, id)
}

// DeleteTodo deletes a todo and removes it from its project's todo
// index. The index key comes from the todo's own stored projectId,
// never from the caller. Record first, index second: a crash in
// between leaves a phantom index entry, which reads tolerate.
func (e *Engine) DeleteTodo(ctx context.Context, id string) error {
	owner, err := e.owner(ctx)
	if err != nil {
		return err
	}

	todo, err := e.loadTodo(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := e.store.Delete(ctx, todoKey(owner, id)); err != nil {
		return fmt.Errorf("deleting todo %q: %w", id, err)
	}
	if err := e.index.Remove(ctx, todoIndexKey(owner, todo.ProjectID), id); err != nil {
		return fmt.Errorf("unindexing todo %q: %w", id, err)
	}
	return nil
}

// ListTodos returns a project's todos in creation order, optionally
// filtered to a single status. Pass status "" for all todos. Fails
// with NotFound when the project is absent.
func (e *Engine) ListTodos(ctx context.Context, projectID string, status Status) ([]Todo, error) {
	owner, err := e.owner(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := e.loadProject(ctx, owner, projectID); err != nil {
		return nil, err
	}
	if status != "" {
		if err := ValidateStatus(status); err != nil {
			return nil, err
		}
	}

	todos, err := e.loadTodosByProject(ctx, owner, projectID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return todos, nil
	}

	filtered := make([]Todo, 0, len(todos))
	for _, todo := range todos {
		if todo.Status == status {
			filtered = append(filtered, todo)
		}
	}
	return filtered, nil
}

// ─── Record access ───────────────────────────────────────────────────────────

func (e *Engine) loadProject(ctx context.Context, owner, id string) (*Project, error) {
	value, ok, err := e.store.Get(ctx, projectKey(owner, id))
	if err != nil {
		return nil, fmt.Errorf("loading project %q: %w", id, err)
	}
	if !ok {
		return nil, &NotFoundError{Kind: KindProject, ID: id}
	}
	var project Project
	if err := decodeRecord(KindProject, value, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (e *Engine) putProject(ctx context.Context, owner string, project *Project) error {
	value, err := encodeRecord(KindProject, project)
	if err != nil {
		return err
	}
	if err := e.store.Put(ctx, projectKey(owner, project.ID), value); err != nil {
		return fmt.Errorf("storing project %q: %w", project.ID, err)
	}
	return nil
}

func (e *Engine) loadTodo(ctx context.Context, owner, id string) (*Todo, error) {
	value, ok, err := e.store.Get(ctx, todoKey(owner, id))
	if err != nil {
		return nil, fmt.Errorf("loading todo %q: %w", id, err)
	}
	if !ok {
		return nil, &NotFoundError{Kind: KindTodo, ID: id}
	}
	var todo Todo
	if err := decodeRecord(KindTodo, value, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (e *Engine) putTodo(ctx context.Context, owner string, todo *Todo) error {
	value, err := encodeRecord(KindTodo, todo)
	if err != nil {
		return err
	}
	if err := e.store.Put(ctx, todoKey(owner, todo.ID), value); err != nil {
		return fmt.Errorf("storing todo %q: %w", todo.ID, err)
	}
	return nil
}

// loadTodosByProject is the self-healing read over a project's todo
// index: ids whose record is gone are skipped, not errors.
func (e *Engine) loadTodosByProject(ctx context.Context, owner, projectID string) ([]Todo, error) {
	ids, err := e.index.Load(ctx, todoIndexKey(owner, projectID))
	if err != nil {
		return nil, err
	}

	todos := make([]Todo, 0, len(ids))
	for _, id := range ids {
		todo, err := e.loadTodo(ctx, owner, id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, nil
}
