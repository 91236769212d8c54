package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/stayfront/hotel-console/internal/apperrors"
)

// Memory is an in-memory Resource implementation with the same merge
// semantics as the REST store: a patch is a partial JSON object merged
// field-by-field into the stored record, last write wins.
type Memory[T any] struct {
	mu    sync.Mutex
	items map[string]T
	idOf  func(T) string
}

// NewMemory creates an empty in-memory collection. idOf extracts the
// identifier from an item.
func NewMemory[T any](idOf func(T) string) *Memory[T] {
	return &Memory[T]{items: make(map[string]T), idOf: idOf}
}

// List returns all items ordered by id for deterministic tests.
func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.items[id])
	}
	return out, nil
}

// Find filters items by JSON field equality, matching the REST store's
// query-string filtering.
func (m *Memory[T]) Find(ctx context.Context, filters map[string]string) ([]T, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, item := range all {
		fields, err := toMap(item)
		if err != nil {
			return nil, err
		}
		match := true
		for key, want := range filters {
			if fmt.Sprintf("%v", fields[key]) != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, item)
		}
	}
	return out, nil
}

// Get returns the item with the given id.
func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		var zero T
		return zero, apperrors.NewNotFoundError("resource", id)
	}
	return item, nil
}

// Create stores a new item under its own id.
func (m *Memory[T]) Create(ctx context.Context, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[m.idOf(item)] = item
	return item, nil
}

// Patch merges the partial update into the stored record.
func (m *Memory[T]) Patch(ctx context.Context, id string, patch any) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	existing, ok := m.items[id]
	if !ok {
		return zero, apperrors.NewNotFoundError("resource", id)
	}

	base, err := toMap(existing)
	if err != nil {
		return zero, err
	}
	delta, err := toMap(patch)
	if err != nil {
		return zero, err
	}
	for key, value := range delta {
		base[key] = value
	}

	raw, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}
	var merged T
	if err := json.Unmarshal(raw, &merged); err != nil {
		return zero, err
	}
	m.items[id] = merged
	return merged, nil
}

// Delete removes the item with the given id.
func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return apperrors.NewNotFoundError("resource", id)
	}
	delete(m.items, id)
	return nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
