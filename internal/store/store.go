// Package store holds the ingredient and recipe collections. Misses on
// lookup, update and delete are never errors: Get and Update report them
// through a found flag and Delete reports how many records it removed.
package store

import (
	"context"

	"recipecost/internal/models"

	"github.com/google/uuid"
)

// Record is implemented by every entity a Collection can hold
type Record[T any] interface {
	GetID() string
	WithID(id string) T
	Clone() T
}

// Collection is the repository contract shared by ingredients and recipes.
type Collection[T any] interface {
	// Add appends rec. An empty ID is replaced by a generated one; a caller
	// supplied ID is kept as is without a duplicate check.
	Add(ctx context.Context, rec T) (T, error)
	// Update replaces the first record with the given id, keeping its
	// position. On a miss the collection is untouched and rec is returned
	// with found set to false.
	Update(ctx context.Context, id string, rec T) (T, bool, error)
	// Delete removes every record with the given id.
	Delete(ctx context.Context, id string) (int, error)
	// List returns a copy of all records in insertion order.
	List(ctx context.Context) ([]T, error)
	// Get returns the first record with the given id.
	Get(ctx context.Context, id string) (T, bool, error)
}

// Store groups the two collections the application works with
type Store interface {
	Ingredients() Collection[models.Ingredient]
	Recipes() Collection[models.Recipe]
	Close() error
}

// IDFunc generates identifiers for records added without one
type IDFunc func() string

// NewUUID is the default IDFunc
func NewUUID() string {
	return uuid.New().String()
}
