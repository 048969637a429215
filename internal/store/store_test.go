package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"recipecost/internal/database"
	"recipecost/internal/models"
	"recipecost/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() store.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newSQLStore(t *testing.T) store.Store {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, ":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	s := store.NewSQLWithIDs(db, sequentialIDs())
	t.Cleanup(func() { s.Close() })
	return s
}

// backends runs fn against every Store implementation
func backends(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemoryWithIDs(sequentialIDs()))
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newSQLStore(t))
	})
}

func TestAddAssignsIDAndRoundTrips(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		added, err := s.Ingredients().Add(ctx, models.Ingredient{Name: "Flour", Price: 10, PackWeight: 1000})
		require.NoError(t, err)
		assert.Equal(t, "id-1", added.ID)

		got, found, err := s.Ingredients().Get(ctx, added.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, added, got)
	})
}

func TestAddKeepsCallerID(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		in := models.Recipe{
			ID:          "bread",
			Name:        "Bread",
			Ingredients: models.RecipeLines{{IngredientID: "flour", UsedWeight: 500}},
			ExtraCosts:  0.5,
		}
		added, err := s.Recipes().Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, added)

		got, found, err := s.Recipes().Get(ctx, "bread")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, in, got)
	})
}

func TestRecipeLinesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		lines models.RecipeLines
	}{
		{"nil lines", nil},
		{"empty lines", models.RecipeLines{}},
		{"one line", models.RecipeLines{{IngredientID: "flour", UsedWeight: 250}}},
	}

	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				added, err := s.Recipes().Add(ctx, models.Recipe{Name: tt.name, Ingredients: tt.lines})
				require.NoError(t, err)

				got, found, err := s.Recipes().Get(ctx, added.ID)
				require.NoError(t, err)
				require.True(t, found)
				assert.Equal(t, added, got)

				want, err := json.Marshal(added)
				require.NoError(t, err)
				body, err := json.Marshal(got)
				require.NoError(t, err)
				assert.JSONEq(t, string(want), string(body))
			})
		}
	})
}

func TestDuplicateIDsFirstMatchWins(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		ings := s.Ingredients()

		_, err := ings.Add(ctx, models.Ingredient{ID: "dup", Name: "First", Price: 1, PackWeight: 1})
		require.NoError(t, err)
		_, err = ings.Add(ctx, models.Ingredient{ID: "dup", Name: "Second", Price: 2, PackWeight: 2})
		require.NoError(t, err)

		got, found, err := ings.Get(ctx, "dup")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "First", got.Name)

		updated, found, err := ings.Update(ctx, "dup", models.Ingredient{Name: "Replaced", Price: 3, PackWeight: 3})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dup", updated.ID)

		list, err := ings.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Replaced", list[0].Name)
		assert.Equal(t, "Second", list[1].Name)

		removed, err := ings.Delete(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		list, err = ings.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestUpdatePreservesPosition(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		ings := s.Ingredients()

		for _, name := range []string{"A", "B", "C"} {
			_, err := ings.Add(ctx, models.Ingredient{Name: name, Price: 1, PackWeight: 100})
			require.NoError(t, err)
		}

		updated, found, err := ings.Update(ctx, "id-2", models.Ingredient{ID: "ignored", Name: "B2", Price: 4, PackWeight: 200})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, models.Ingredient{ID: "id-2", Name: "B2", Price: 4, PackWeight: 200}, updated)

		list, err := ings.List(ctx)
		require.NoError(t, err)

		want := []models.Ingredient{
			{ID: "id-1", Name: "A", Price: 1, PackWeight: 100},
			{ID: "id-2", Name: "B2", Price: 4, PackWeight: 200},
			{ID: "id-3", Name: "C", Price: 1, PackWeight: 100},
		}
		if diff := cmp.Diff(want, list); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUpdateMissIsNoOp(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		recipes := s.Recipes()

		_, err := recipes.Add(ctx, models.Recipe{Name: "Cake", ExtraCosts: 1})
		require.NoError(t, err)
		before, err := recipes.List(ctx)
		require.NoError(t, err)

		in := models.Recipe{ID: "x", Name: "Ghost"}
		out, found, err := recipes.Update(ctx, "unknown", in)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, in, out)

		after, err := recipes.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		ings := s.Ingredients()

		for _, name := range []string{"A", "B"} {
			_, err := ings.Add(ctx, models.Ingredient{Name: name, Price: 1, PackWeight: 1})
			require.NoError(t, err)
		}

		removed, err := ings.Delete(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		once, err := ings.List(ctx)
		require.NoError(t, err)

		removed, err = ings.Delete(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		twice, err := ings.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
		require.Len(t, twice, 1)
		assert.Equal(t, "B", twice[0].Name)
	})
}

func TestGetMissing(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		got, found, err := s.Recipes().Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, models.Recipe{}, got)
	})
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	backends(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		recipes := s.Recipes()

		in := models.Recipe{
			Name:        "Soup",
			Ingredients: models.RecipeLines{{IngredientID: "a", UsedWeight: 10}},
		}
		added, err := recipes.Add(ctx, in)
		require.NoError(t, err)

		// Mutating the caller's slice must not reach the store.
		in.Ingredients[0].UsedWeight = 99

		got, _, err := recipes.Get(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, got.Ingredients[0].UsedWeight)

		got.Ingredients[0].UsedWeight = 42
		list, err := recipes.List(ctx)
		require.NoError(t, err)
		list[0].Ingredients[0].UsedWeight = 43

		again, _, err := recipes.Get(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, again.Ingredients[0].UsedWeight)
	})
}

func TestCancelledContext(t *testing.T) {
	s := newSQLStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Ingredients().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
