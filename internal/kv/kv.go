// Package kv provides the flat key-value store that all planner state
// lives in. The store is deliberately primitive: opaque string keys,
// opaque string values, no transactions, no scans. Everything richer
// (records, index lists, ownership) is layered on top by the planner
// package through key construction alone.
package kv

import "context"

// Store is the persistence contract. A single Get/Put/Delete is atomic
// from the caller's view; nothing spanning two keys is. Last write wins.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// is absent — absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
