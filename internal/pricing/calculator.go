// Package pricing turns a recipe into a cost breakdown and a retail price.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"recipecost/internal/models"
)

// DefaultProfitPercentage is the margin used when the caller does not ask
// for a specific one
const DefaultProfitPercentage = 25.0

var (
	// ErrDanglingIngredient is matched by errors returned when a recipe line
	// points at an ingredient that no longer exists
	ErrDanglingIngredient = errors.New("recipe references a missing ingredient")
	// ErrInvalidPackWeight is returned for ingredients whose cost per gram
	// is undefined
	ErrInvalidPackWeight = errors.New("ingredient pack weight must be positive")
	// ErrInvalidProfit is returned for a NaN or infinite profit percentage
	ErrInvalidProfit = errors.New("profit percentage must be a finite number")
)

// DanglingIngredientError identifies the recipe line that could not be priced
type DanglingIngredientError struct {
	RecipeID     string
	IngredientID string
}

func (e *DanglingIngredientError) Error() string {
	return fmt.Sprintf("recipe %s: ingredient %s not found", e.RecipeID, e.IngredientID)
}

// Is makes errors.Is(err, ErrDanglingIngredient) hold
func (e *DanglingIngredientError) Is(target error) bool {
	return target == ErrDanglingIngredient
}

// IngredientReader resolves ingredients by id
type IngredientReader interface {
	Get(ctx context.Context, id string) (models.Ingredient, bool, error)
}

// RecipeReader resolves recipes by id
type RecipeReader interface {
	Get(ctx context.Context, id string) (models.Recipe, bool, error)
}

// Calculator prices recipes against the current ingredient collection
type Calculator struct {
	ingredients IngredientReader
	recipes     RecipeReader
}

// NewCalculator creates a calculator reading from the given collections
func NewCalculator(ingredients IngredientReader, recipes RecipeReader) *Calculator {
	return &Calculator{ingredients: ingredients, recipes: recipes}
}

// Calculate prices the recipe with the given id. An unknown recipe is not an
// error: found is false. A line whose ingredient is gone aborts the whole
// calculation with a *DanglingIngredientError.
func (c *Calculator) Calculate(ctx context.Context, recipeID string, profitPercentage float64) (models.RecipeResult, bool, error) {
	if math.IsNaN(profitPercentage) || math.IsInf(profitPercentage, 0) {
		return models.RecipeResult{}, false, ErrInvalidProfit
	}

	recipe, found, err := c.recipes.Get(ctx, recipeID)
	if err != nil {
		return models.RecipeResult{}, false, fmt.Errorf("failed to load recipe %s: %w", recipeID, err)
	}
	if !found {
		return models.RecipeResult{}, false, nil
	}

	lines := make([]models.LineCost, 0, len(recipe.Ingredients))
	var ingredientsTotal float64
	for _, line := range recipe.Ingredients {
		ingredient, found, err := c.ingredients.Get(ctx, line.IngredientID)
		if err != nil {
			return models.RecipeResult{}, false, fmt.Errorf("failed to load ingredient %s: %w", line.IngredientID, err)
		}
		if !found {
			return models.RecipeResult{}, false, &DanglingIngredientError{RecipeID: recipe.ID, IngredientID: line.IngredientID}
		}

		cost, err := LineFor(ingredient, line.UsedWeight)
		if err != nil {
			return models.RecipeResult{}, false, fmt.Errorf("recipe %s: %w", recipe.ID, err)
		}
		lines = append(lines, cost)
		ingredientsTotal += cost.IngredientCost
	}

	totalCost := ingredientsTotal + recipe.ExtraCosts
	profit, finalPrice := Markup(totalCost, profitPercentage)

	return models.RecipeResult{
		RecipeID:             recipe.ID,
		RecipeName:           recipe.Name,
		Ingredients:          lines,
		IngredientsTotalCost: ingredientsTotal,
		ExtraCosts:           recipe.ExtraCosts,
		TotalCost:            totalCost,
		ProfitPercentage:     profitPercentage,
		ProfitAmount:         profit,
		FinalPrice:           finalPrice,
	}, true, nil
}

// LineFor computes the cost of using usedWeight grams of ingredient. It is
// also what a recipe editor shows next to each line before saving.
func LineFor(ingredient models.Ingredient, usedWeight float64) (models.LineCost, error) {
	if !(ingredient.PackWeight > 0) || math.IsInf(ingredient.PackWeight, 0) {
		return models.LineCost{}, fmt.Errorf("%w: ingredient %s has pack weight %v", ErrInvalidPackWeight, ingredient.ID, ingredient.PackWeight)
	}

	costPerGram := ingredient.CostPerGram()
	return models.LineCost{
		IngredientID:    ingredient.ID,
		IngredientName:  ingredient.Name,
		UsedWeight:      usedWeight,
		PackWeight:      ingredient.PackWeight,
		IngredientPrice: ingredient.Price,
		IngredientCost:  costPerGram * usedWeight,
		CostPerGram:     costPerGram,
	}, nil
}

// Markup returns the profit amount and final price for totalCost at
// profitPercentage
func Markup(totalCost, profitPercentage float64) (profit, finalPrice float64) {
	profit = totalCost * profitPercentage / 100
	return profit, totalCost + profit
}
