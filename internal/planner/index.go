package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/plankeep/plankeep/internal/kv"
)

// indexList is the stored shape of an index: an ordered id sequence
// plus a version counter bumped on every rewrite. The counter makes
// lost updates visible in the stored value and leaves room for
// compare-and-swap if the store ever grows conditional writes.
type indexList struct {
	Version int      `json:"version"`
	IDs     []string `json:"ids"`
}

// Index maintains id-list values in the store. The store has no atomic
// append, so every mutation is load-modify-overwrite; mutations to the
// same list key are funneled through a per-key mutex so concurrent
// appends within this process cannot drop each other's writes.
type Index struct {
	store kv.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIndex creates an Index over the given store.
func NewIndex(store kv.Store) *Index {
	return &Index{store: store, locks: make(map[string]*sync.Mutex)}
}

// lockFor returns the mutex serializing mutations to key.
func (ix *Index) lockFor(key string) *sync.Mutex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	l, ok := ix.locks[key]
	if !ok {
		l = &sync.Mutex{}
		ix.locks[key] = l
	}
	return l
}

// Load returns the ordered ids under key, empty if the key is absent.
func (ix *Index) Load(ctx context.Context, key string) ([]string, error) {
	list, _, err := ix.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return list.IDs, nil
}

// Append adds id to the end of the list under key, creating the list
// if absent.
func (ix *Index) Append(ctx context.Context, key, id string) error {
	l := ix.lockFor(key)
	l.Lock()
	defer l.Unlock()

	list, _, err := ix.load(ctx, key)
	if err != nil {
		return err
	}
	list.IDs = append(list.IDs, id)
	return ix.save(ctx, key, list)
}

// Remove deletes id from the list under key. Removing an id that is
// not present is a no-op, not an error — a second delete of the same
// record must leave the list untouched.
func (ix *Index) Remove(ctx context.Context, key, id string) error {
	l := ix.lockFor(key)
	l.Lock()
	defer l.Unlock()

	list, ok, err := ix.load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	kept := list.IDs[:0]
	found := false
	for _, existing := range list.IDs {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil
	}
	list.IDs = kept
	return ix.save(ctx, key, list)
}

func (ix *Index) load(ctx context.Context, key string) (indexList, bool, error) {
	value, ok, err := ix.store.Get(ctx, key)
	if err != nil {
		return indexList{}, false, fmt.Errorf("loading index %q: %w", key, err)
	}
	if !ok {
		return indexList{}, false, nil
	}
	var list indexList
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return indexList{}, false, fmt.Errorf("decoding index %q: %w", key, err)
	}
	return list, true, nil
}

func (ix *Index) save(ctx context.Context, key string, list indexList) error {
	list.Version++
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding index %q: %w", key, err)
	}
	if err := ix.store.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving index %q: %w", key, err)
	}
	return nil
}
