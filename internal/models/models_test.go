package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientCostPerGram(t *testing.T) {
	flour := Ingredient{Name: "Flour", Price: 10, PackWeight: 1000}
	assert.InDelta(t, 0.01, flour.CostPerGram(), 1e-12)
}

func TestIngredientValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Ingredient
		wantErr string
	}{
		{"valid", Ingredient{Name: "Sugar", Price: 5, PackWeight: 500}, ""},
		{"free ingredient", Ingredient{Name: "Water", Price: 0, PackWeight: 1000}, ""},
		{"missing name", Ingredient{Price: 5, PackWeight: 500}, "name is required"},
		{"zero pack weight", Ingredient{Name: "Salt", Price: 1, PackWeight: 0}, "packWeight must be greater than 0"},
		{"negative pack weight", Ingredient{Name: "Salt", Price: 1, PackWeight: -5}, "packWeight must be greater than 0"},
		{"negative price", Ingredient{Name: "Salt", Price: -1, PackWeight: 5}, "price must not be less than 0"},
		{"nan price", Ingredient{Name: "Salt", Price: math.NaN(), PackWeight: 5}, "price must be a finite number"},
		{"infinite pack", Ingredient{Name: "Salt", Price: 1, PackWeight: math.Inf(1)}, "packWeight must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecipeValidate(t *testing.T) {
	ok := Recipe{
		Name:        "Bread",
		Ingredients: RecipeLines{{IngredientID: "flour", UsedWeight: 500}},
		ExtraCosts:  0.5,
	}
	assert.NoError(t, ok.Validate())

	noLines := Recipe{Name: "Air"}
	assert.NoError(t, noLines.Validate())

	badLine := Recipe{
		Name:        "Bread",
		Ingredients: RecipeLines{{IngredientID: "flour", UsedWeight: 500}, {UsedWeight: -1}},
	}
	err := badLine.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "ingredients[1].ingredientId is required")
	assert.Contains(t, err.Error(), "ingredients[1].usedWeight must not be less than 0")

	negativeExtra := Recipe{Name: "Bread", ExtraCosts: -2}
	assert.ErrorIs(t, negativeExtra.Validate(), ErrInvalid)
}

func TestRecipeCloneIsIndependent(t *testing.T) {
	orig := Recipe{
		ID:          "r1",
		Name:        "Cake",
		Ingredients: RecipeLines{{IngredientID: "a", UsedWeight: 100}},
	}

	clone := orig.Clone()
	clone.Ingredients[0].UsedWeight = 999

	assert.Equal(t, 100.0, orig.Ingredients[0].UsedWeight)

	renamed := orig.WithID("r2")
	renamed.Ingredients[0].IngredientID = "b"
	assert.Equal(t, "a", orig.Ingredients[0].IngredientID)
	assert.Equal(t, "r2", renamed.ID)
	assert.Equal(t, "r1", orig.ID)
}

func TestRecipeReferences(t *testing.T) {
	r := Recipe{Ingredients: RecipeLines{{IngredientID: "a"}, {IngredientID: "b"}}}
	assert.True(t, r.References("b"))
	assert.False(t, r.References("c"))
}

func TestRecipeLinesValueScan(t *testing.T) {
	lines := RecipeLines{{IngredientID: "a", UsedWeight: 200}, {IngredientID: "b", UsedWeight: 100}}

	v, err := lines.Value()
	require.NoError(t, err)

	var scanned RecipeLines
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, lines, scanned)

	require.NoError(t, scanned.Scan([]byte(`[{"ingredientId":"x","usedWeight":1.5}]`)))
	assert.Equal(t, RecipeLines{{IngredientID: "x", UsedWeight: 1.5}}, scanned)

	empty, err := RecipeLines{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	null, err := RecipeLines(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, null)

	require.NoError(t, scanned.Scan("[]"))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
}
