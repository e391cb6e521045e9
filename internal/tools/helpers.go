// Package tools implements the MCP tool handlers for the planner.
//
// Each tool is a struct with its dependencies (the planner engine)
// injected via constructor, a Definition() returning the tool schema,
// and a Handle() processing the call.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the engine, never on the store directly
// - domain failures (NotFound, unauthorized, validation) become tool
//   error results; store failures become handler errors so the host
//   sees a protocol-level failure with the upstream detail
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/planner"
)

// jsonResult marshals v as pretty-printed JSON into a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// engineResult translates an engine error per the package contract:
// caller-facing failures become tool error results, anything else is
// an upstream failure returned as a handler error.
func engineResult(err error) (*mcp.CallToolResult, error) {
	if planner.IsNotFound(err) ||
		errors.Is(err, planner.ErrUnauthorized) ||
		errors.Is(err, planner.ErrInvalidOwner) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// optString reports whether key was supplied and returns its value.
// Absent means "leave unchanged" for partial updates, so presence
// matters, not just the value.
func optString(req mcp.CallToolRequest, key string) (string, bool) {
	v, ok := req.GetArguments()[key].(string)
	return v, ok
}
