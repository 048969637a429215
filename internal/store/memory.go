package store

import (
	"context"
	"sync"

	"recipecost/internal/models"
)

// Compile-time interface check.
var _ Store = (*Memory)(nil)

// Memory keeps both collections in process memory. Each collection has its
// own lock, so it is safe for concurrent use from request handlers.
type Memory struct {
	ingredients *memoryCollection[models.Ingredient]
	recipes     *memoryCollection[models.Recipe]
}

// NewMemory creates an empty in-memory store that generates UUIDs
func NewMemory() *Memory {
	return NewMemoryWithIDs(NewUUID)
}

// NewMemoryWithIDs creates an empty in-memory store using newID for records
// added without an identifier
func NewMemoryWithIDs(newID IDFunc) *Memory {
	return &Memory{
		ingredients: &memoryCollection[models.Ingredient]{newID: newID},
		recipes:     &memoryCollection[models.Recipe]{newID: newID},
	}
}

// Ingredients returns the ingredient collection
func (m *Memory) Ingredients() Collection[models.Ingredient] {
	return m.ingredients
}

// Recipes returns the recipe collection
func (m *Memory) Recipes() Collection[models.Recipe] {
	return m.recipes
}

// Close is a no-op for the memory store
func (m *Memory) Close() error {
	return nil
}

type memoryCollection[T Record[T]] struct {
	mu    sync.RWMutex
	items []T
	newID IDFunc
}

func (c *memoryCollection[T]) Add(ctx context.Context, rec T) (T, error) {
	if rec.GetID() == "" {
		rec = rec.WithID(c.newID())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, rec.Clone())
	return rec, nil
}

func (c *memoryCollection[T]) Update(ctx context.Context, id string, rec T) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.GetID() != id {
			continue
		}
		stored := rec.WithID(id)
		c.items[i] = stored
		return stored.Clone(), true, nil
	}
	return rec, false, nil
}

func (c *memoryCollection[T]) Delete(ctx context.Context, id string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.GetID() == id {
			removed++
			continue
		}
		kept = append(kept, item)
	}

	// Clear the tail so removed records can be collected.
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	return removed, nil
}

func (c *memoryCollection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out, nil
}

func (c *memoryCollection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.GetID() == id {
			return item.Clone(), true, nil
		}
	}
	var zero T
	return zero, false, nil
}
