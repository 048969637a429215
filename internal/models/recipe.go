package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// RecipeIngredient is a single line of a recipe: how many grams of an
// ingredient the recipe consumes. IngredientID is a weak reference and may
// point at an ingredient that no longer exists.
type RecipeIngredient struct {
	IngredientID string  `json:"ingredientId" validate:"required"`
	UsedWeight   float64 `json:"usedWeight" validate:"finite,gte=0"`
}

// RecipeLines represents the ordered ingredient lines of a recipe that can be
// stored in the database as JSON text
type RecipeLines []RecipeIngredient

// Value converts the lines to a JSON string for storage. Nil lines are
// stored as NULL so they read back as nil, and empty lines as "[]".
func (l RecipeLines) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal([]RecipeIngredient(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan converts the database value back to lines
func (l *RecipeLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var lines []RecipeIngredient
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, &lines); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &lines); err != nil {
			return err
		}
	default:
		return errors.New("unsupported type for RecipeLines")
	}

	if lines == nil {
		lines = []RecipeIngredient{}
	}
	*l = lines
	return nil
}

// Recipe represents a product made from ingredient lines plus a flat amount
// of extra costs (electricity, gas, packaging) charged once per recipe.
type Recipe struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Ingredients RecipeLines `json:"ingredients" validate:"dive"`
	ExtraCosts  float64     `json:"extraCosts" validate:"finite,gte=0"`
}

// GetID returns the recipe identifier
func (r Recipe) GetID() string {
	return r.ID
}

// WithID returns a copy of the recipe carrying id
func (r Recipe) WithID(id string) Recipe {
	r = r.Clone()
	r.ID = id
	return r
}

// Clone returns a copy of the recipe that shares no line storage with r
func (r Recipe) Clone() Recipe {
	if r.Ingredients != nil {
		lines := make(RecipeLines, len(r.Ingredients))
		copy(lines, r.Ingredients)
		r.Ingredients = lines
	}
	return r
}

// References reports whether any line of the recipe points at ingredientID
func (r Recipe) References(ingredientID string) bool {
	for _, line := range r.Ingredients {
		if line.IngredientID == ingredientID {
			return true
		}
	}
	return false
}

// Validate checks the recipe and each of its lines before it is stored
func (r Recipe) Validate() error {
	return validateStruct(r)
}
