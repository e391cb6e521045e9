// Package planner implements the project/todo domain on top of a flat
// key-value store. Records live one-per-key; one-to-many relationships
// (owner→projects, project→todos) are materialized as index lists under
// derived keys, maintained by this package's Index.
//
// The store offers no cross-key atomicity, so every multi-step
// operation in the Engine is ordered so that a crash can leave a
// phantom index entry (harmless, filtered on read) but never a live
// record that no index references.
package planner

import (
	"encoding/json"
	"fmt"
	"time"
)

// schemaVersion tags every stored record envelope. Records with an
// unknown version fail to decode instead of being trusted.
const schemaVersion = 1

// Record kinds, used both in envelopes and in NotFound errors.
const (
	KindProject = "project"
	KindTodo    = "todo"
)

// Status is a todo's workflow state. All transitions are caller-directed;
// any status may move to any other.
type Status string

// Valid statuses. New todos always start as StatusPending.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ValidateStatus rejects values outside the status enum.
func ValidateStatus(s Status) error {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return nil
	}
	return fmt.Errorf("invalid status %q: must be one of pending, in-progress, completed", s)
}

// Priority is a todo's urgency level.
type Priority string

// Valid priorities. Todos created without one default to PriorityMedium.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidatePriority rejects values outside the priority enum.
func ValidatePriority(p Priority) error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return fmt.Errorf("invalid priority %q: must be one of low, medium, high", p)
}

// Project is a container for todos.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Todo is a single work item belonging to exactly one project.
type Todo struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// envelope is the stored shape of every record value: a kind tag and
// schema version wrapping the record payload. Decoding validates both
// rather than trusting whatever shape is in the store.
type envelope struct {
	Kind    string          `json:"kind"`
	Version int             `json:"v"`
	Record  json.RawMessage `json:"record"`
}

// encodeRecord wraps a record in a tagged, versioned envelope.
func encodeRecord(kind string, record any) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encoding %s record: %w", kind, err)
	}
	data, err := json.Marshal(envelope{Kind: kind, Version: schemaVersion, Record: payload})
	if err != nil {
		return "", fmt.Errorf("encoding %s envelope: %w", kind, err)
	}
	return string(data), nil
}

// decodeRecord unwraps a stored value into record, enforcing the kind
// tag and schema version.
func decodeRecord(kind, value string, record any) error {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return fmt.Errorf("decoding %s envelope: %w", kind, err)
	}
	if env.Kind != kind {
		return fmt.Errorf("decoding %s: stored record has kind %q", kind, env.Kind)
	}
	if env.Version != schemaVersion {
		return fmt.Errorf("decoding %s: unsupported schema version %d", kind, env.Version)
	}
	if err := json.Unmarshal(env.Record, record); err != nil {
		return fmt.Errorf("decoding %s record: %w", kind, err)
	}
	return nil
}
