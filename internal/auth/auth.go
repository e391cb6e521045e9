// Package auth supplies the caller-identity plumbing for per-owner
// isolation. The token exchange that establishes an identity happens
// outside this process; by the time a tool call reaches the engine the
// caller is just an opaque string on the context, and the only question
// left is whether that caller is authorized.
package auth

import "context"

// Policy decides whether a caller may use the planner at all.
// It is injected into the engine at construction — there is no global
// allow-list anywhere in the process.
type Policy interface {
	Authorize(callerID string) bool
}

// AllowAll authorizes every caller, including the empty (anonymous)
// caller used in single-tenant mode.
type AllowAll struct{}

// Authorize implements Policy.
func (AllowAll) Authorize(string) bool { return true }

// Allowlist authorizes only the callers it was built with.
type Allowlist struct {
	callers map[string]struct{}
}

// NewAllowlist builds an Allowlist from the given caller ids.
func NewAllowlist(callerIDs []string) *Allowlist {
	callers := make(map[string]struct{}, len(callerIDs))
	for _, id := range callerIDs {
		callers[id] = struct{}{}
	}
	return &Allowlist{callers: callers}
}

// Authorize implements Policy.
func (a *Allowlist) Authorize(callerID string) bool {
	_, ok := a.callers[callerID]
	return ok
}

type callerKey struct{}

// WithCaller returns a context carrying the authenticated caller id.
func WithCaller(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerKey{}, callerID)
}

// CallerFromContext extracts the caller id set by WithCaller.
// Returns "" when no identity was established (single-tenant mode).
func CallerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(callerKey{}).(string)
	return id
}
