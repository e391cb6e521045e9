package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/plankeep/plankeep/internal/auth"
	"github.com/plankeep/plankeep/internal/kv"
)

// --- Test helpers ---

// newTestEngine returns a single-tenant engine over an in-memory store
// with a deterministic clock (one second per call) and id sequence.
func newTestEngine(t *testing.T) (*Engine, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	e := NewEngine(store, auth.AllowAll{}, false)

	var tick, ids int64
	e.now = func() time.Time {
		tick++
		return time.Unix(1700000000, 0).Add(time.Duration(tick) * time.Second).UTC()
	}
	e.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return e, store
}

func mustCreateProject(t *testing.T, e *Engine, name, description string) *Project {
	t.Helper()
	p, err := e.CreateProject(context.Background(), name, description)
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	return p
}

func mustCreateTodo(t *testing.T, e *Engine, projectID, title string) *Todo {
	t.Helper()
	todo, err := e.CreateTodo(context.Background(), projectID, title, "", "")
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	return todo
}

// --- Projects ---

func TestCreateProject_GetRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	created := mustCreateProject(t, e, "Launch", "Q1 launch")

	got, todos, err := e.GetProject(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if *got != *created {
		t.Errorf("GetProject = %+v, want %+v", got, created)
	}
	if len(todos) != 0 {
		t.Errorf("new project has %d todos, want 0", len(todos))
	}
}

func TestListProjects_ContainsEachExactlyOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	want := make(map[string]int)
	for i := 0; i < 5; i++ {
		p := mustCreateProject(t, e, fmt.Sprintf("p%d", i), "")
		want[p.ID] = 0
	}

	projects, err := e.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 5 {
		t.Fatalf("ListProjects returned %d projects, want 5", len(projects))
	}
	for _, p := range projects {
		want[p.ID]++
	}
	for id, n := range want {
		if n != 1 {
			t.Errorf("project %s appears %d times, want 1", id, n)
		}
	}
}

func TestGetProject_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	_, _, err := e.GetProject(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("GetProject error = %v, want NotFound", err)
	}
}

func TestDeleteProject_GoneFromGetAndList(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "doomed", "")
	keep := mustCreateProject(t, e, "keep", "")

	if err := e.DeleteProject(context.Background(), p.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, _, err := e.GetProject(context.Background(), p.ID); !IsNotFound(err) {
		t.Errorf("GetProject after delete = %v, want NotFound", err)
	}

	projects, err := e.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != keep.ID {
		t.Errorf("ListProjects after delete = %+v, want only %s", projects, keep.ID)
	}
}

func TestDeleteProject_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.DeleteProject(context.Background(), "missing"); !IsNotFound(err) {
		t.Fatalf("DeleteProject error = %v, want NotFound", err)
	}
}

func TestDeleteProject_CascadesToTodos(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")
	t1 := mustCreateTodo(t, e, p.ID, "first")
	t2 := mustCreateTodo(t, e, p.ID, "second")

	if err := e.DeleteProject(context.Background(), p.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := e.GetTodo(context.Background(), t1.ID); !IsNotFound(err) {
		t.Errorf("GetTodo(%s) after cascade = %v, want NotFound", t1.ID, err)
	}
	if _, err := e.GetTodo(context.Background(), t2.ID); !IsNotFound(err) {
		t.Errorf("GetTodo(%s) after cascade = %v, want NotFound", t2.ID, err)
	}
}

func TestListProjects_SkipsMissingRecords(t *testing.T) {
	e, store := newTestEngine(t)
	p1 := mustCreateProject(t, e, "gone", "")
	p2 := mustCreateProject(t, e, "present", "")

	// Simulate index/record divergence: remove the record directly,
	// leaving its id in the project index.
	if err := store.Delete(context.Background(), projectKey("", p1.ID)); err != nil {
		t.Fatalf("store delete: %v", err)
	}

	projects, err := e.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != p2.ID {
		t.Errorf("ListProjects = %+v, want only %s", projects, p2.ID)
	}
}

// --- Todos ---

func TestCreateTodo_Defaults(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "Q1 launch")

	todo, err := e.CreateTodo(context.Background(), p.ID, "Write copy", "", "")
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if todo.Status != StatusPending {
		t.Errorf("Status = %s, want pending", todo.Status)
	}
	if todo.Priority != PriorityMedium {
		t.Errorf("Priority = %s, want medium", todo.Priority)
	}
	if todo.Description != "" {
		t.Errorf("Description = %q, want empty", todo.Description)
	}
}

func TestCreateTodo_MissingProject_NoWrites(t *testing.T) {
	e, store := newTestEngine(t)
	before := store.Len()

	_, err := e.CreateTodo(context.Background(), "missing", "title", "", "")
	if !IsNotFound(err) {
		t.Fatalf("CreateTodo error = %v, want NotFound", err)
	}
	if store.Len() != before {
		t.Errorf("store has %d keys after failed create, want %d", store.Len(), before)
	}
}

func TestCreateTodo_InvalidPriority(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")
	if _, err := e.CreateTodo(context.Background(), p.ID, "t", "", "urgent"); err == nil {
		t.Fatal("CreateTodo accepted invalid priority")
	}
}

func TestUpdateTodo_StatusOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")
	created, err := e.CreateTodo(context.Background(), p.ID, "Write copy", "draft it", PriorityHigh)
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	status := StatusCompleted
	updated, err := e.UpdateTodo(context.Background(), created.ID, TodoUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTodo failed: %v", err)
	}

	if updated.Status != StatusCompleted {
		t.Errorf("Status = %s, want completed", updated.Status)
	}
	if updated.Title != created.Title {
		t.Errorf("Title changed: %q -> %q", created.Title, updated.Title)
	}
	if updated.Description != created.Description {
		t.Errorf("Description changed: %q -> %q", created.Description, updated.Description)
	}
	if updated.Priority != created.Priority {
		t.Errorf("Priority changed: %s -> %s", created.Priority, updated.Priority)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateTodo_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.UpdateTodo(context.Background(), "missing", TodoUpdate{}); !IsNotFound(err) {
		t.Fatalf("UpdateTodo error = %v, want NotFound", err)
	}
}

func TestDeleteTodo_SecondCallNotFound_NoIndexArtifacts(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")
	keep := mustCreateTodo(t, e, p.ID, "keep")
	doomed := mustCreateTodo(t, e, p.ID, "doomed")

	if err := e.DeleteTodo(context.Background(), doomed.ID); err != nil {
		t.Fatalf("first DeleteTodo failed: %v", err)
	}
	if err := e.DeleteTodo(context.Background(), doomed.ID); !IsNotFound(err) {
		t.Fatalf("second DeleteTodo error = %v, want NotFound", err)
	}

	ids, err := e.index.Load(context.Background(), todoIndexKey("", p.ID))
	if err != nil {
		t.Fatalf("loading todo index: %v", err)
	}
	if len(ids) != 1 || ids[0] != keep.ID {
		t.Errorf("todo index = %v, want [%s]", ids, keep.ID)
	}
}

func TestListTodos_StatusFilter_PreservesCreationOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")

	var completed []string
	for i := 0; i < 6; i++ {
		todo := mustCreateTodo(t, e, p.ID, fmt.Sprintf("task %d", i))
		if i%2 == 0 {
			status := StatusCompleted
			if _, err := e.UpdateTodo(context.Background(), todo.ID, TodoUpdate{Status: &status}); err != nil {
				t.Fatalf("UpdateTodo failed: %v", err)
			}
			completed = append(completed, todo.ID)
		}
	}

	todos, err := e.ListTodos(context.Background(), p.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if len(todos) != len(completed) {
		t.Fatalf("ListTodos returned %d todos, want %d", len(todos), len(completed))
	}
	for i, todo := range todos {
		if todo.ID != completed[i] {
			t.Errorf("todos[%d] = %s, want %s (creation order)", i, todo.ID, completed[i])
		}
		if todo.Status != StatusCompleted {
			t.Errorf("todos[%d].Status = %s, want completed", i, todo.Status)
		}
	}
}

func TestListTodos_MissingProject_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.ListTodos(context.Background(), "missing", ""); !IsNotFound(err) {
		t.Fatalf("ListTodos error = %v, want NotFound", err)
	}
}

func TestListTodos_SkipsMissingRecords(t *testing.T) {
	e, store := newTestEngine(t)
	p := mustCreateProject(t, e, "Launch", "")
	gone := mustCreateTodo(t, e, p.ID, "gone")
	present := mustCreateTodo(t, e, p.ID, "present")

	if err := store.Delete(context.Background(), todoKey("", gone.ID)); err != nil {
		t.Fatalf("store delete: %v", err)
	}

	todos, err := e.ListTodos(context.Background(), p.ID, "")
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != present.ID {
		t.Errorf("ListTodos = %+v, want only %s", todos, present.ID)
	}
}

// --- Authorization & isolation ---

func TestEngine_PolicyRejectsCaller(t *testing.T) {
	store := kv.NewMemory()
	e := NewEngine(store, auth.NewAllowlist([]string{"alice"}), false)

	ctx := auth.WithCaller(context.Background(), "mallory")
	if _, err := e.ListProjects(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ListProjects error = %v, want ErrUnauthorized", err)
	}
}

func TestEngine_MultiTenantIsolation(t *testing.T) {
	store := kv.NewMemory()
	e := NewEngine(store, auth.AllowAll{}, true)

	alice := auth.WithCaller(context.Background(), "alice")
	bob := auth.WithCaller(context.Background(), "bob")

	p, err := e.CreateProject(alice, "secret", "")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	if _, _, err := e.GetProject(bob, p.ID); !IsNotFound(err) {
		t.Errorf("bob GetProject(alice's id) = %v, want NotFound", err)
	}
	bobProjects, err := e.ListProjects(bob)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(bobProjects) != 0 {
		t.Errorf("bob sees %d of alice's projects, want 0", len(bobProjects))
	}
	aliceProjects, err := e.ListProjects(alice)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(aliceProjects) != 1 {
		t.Errorf("alice sees %d projects, want 1", len(aliceProjects))
	}
}

func TestEngine_MultiTenantRejectsSeparatorInCaller(t *testing.T) {
	store := kv.NewMemory()
	e := NewEngine(store, auth.AllowAll{}, true)

	ctx := auth.WithCaller(context.Background(), "bad:owner")
	if _, err := e.ListProjects(ctx); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("ListProjects error = %v, want ErrInvalidOwner", err)
	}
}

// --- Full scenario ---

func TestEngine_LaunchScenario(t *testing.T) {
	e, _ := newTestEngine(t)

	p := mustCreateProject(t, e, "Launch", "Q1 launch")

	todo, err := e.CreateTodo(context.Background(), p.ID, "Write copy", "", "")
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if todo.Status != StatusPending || todo.Priority != PriorityMedium || todo.Description != "" {
		t.Fatalf("todo defaults = %+v", todo)
	}

	status := StatusCompleted
	if _, err := e.UpdateTodo(context.Background(), todo.ID, TodoUpdate{Status: &status}); err != nil {
		t.Fatalf("UpdateTodo failed: %v", err)
	}

	got, err := e.GetTodo(context.Background(), todo.ID)
	if err != nil {
		t.Fatalf("GetTodo failed: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt %v not strictly after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}
