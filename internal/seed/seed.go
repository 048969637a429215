// Package seed loads sample ingredients and recipes from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"

	"recipecost/internal/models"

	"gopkg.in/yaml.v3"
)

// yamlFile represents the raw YAML structure
type yamlFile struct {
	Ingredients []yamlIngredient `yaml:"ingredients"`
	Recipes     []yamlRecipe     `yaml:"recipes"`
}

type yamlIngredient struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Price      float64 `yaml:"price"`
	PackWeight float64 `yaml:"pack_weight"`
}

type yamlRecipe struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	ExtraCosts  float64    `yaml:"extra_costs"`
	Ingredients []yamlLine `yaml:"ingredients"`
}

type yamlLine struct {
	Ingredient string  `yaml:"ingredient"`
	Grams      float64 `yaml:"grams"`
}

// Data is the parsed content of a seed file
type Data struct {
	Ingredients []models.Ingredient
	Recipes     []models.Recipe
}

// Catalog is the subset of the catalog service used for seeding
type Catalog interface {
	AddIngredient(ctx context.Context, in models.Ingredient) (models.Ingredient, error)
	AddRecipe(ctx context.Context, in models.Recipe) (models.Recipe, error)
}

// Load reads and parses the seed file at path
func Load(path string) (*Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(content)
}

// Parse converts YAML seed content into records
func Parse(content []byte) (*Data, error) {
	var raw yamlFile
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	data := &Data{
		Ingredients: make([]models.Ingredient, 0, len(raw.Ingredients)),
		Recipes:     make([]models.Recipe, 0, len(raw.Recipes)),
	}
	for _, ing := range raw.Ingredients {
		data.Ingredients = append(data.Ingredients, models.Ingredient{
			ID:         ing.ID,
			Name:       ing.Name,
			Price:      ing.Price,
			PackWeight: ing.PackWeight,
		})
	}
	for _, r := range raw.Recipes {
		recipe := models.Recipe{ID: r.ID, Name: r.Name, ExtraCosts: r.ExtraCosts}
		for _, line := range r.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				IngredientID: line.Ingredient,
				UsedWeight:   line.Grams,
			})
		}
		data.Recipes = append(data.Recipes, recipe)
	}
	return data, nil
}

// Apply inserts every record through c, ingredients first. It stops at the
// first record the catalog rejects.
func Apply(ctx context.Context, c Catalog, data *Data) error {
	for _, ing := range data.Ingredients {
		if _, err := c.AddIngredient(ctx, ing); err != nil {
			return fmt.Errorf("seed ingredient %q: %w", ing.Name, err)
		}
	}
	for _, r := range data.Recipes {
		if _, err := c.AddRecipe(ctx, r); err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.Name, err)
		}
	}
	return nil
}
