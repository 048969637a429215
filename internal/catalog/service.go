// Package catalog is the application facade over the ingredient and recipe
// store and the price calculator. It validates input, records metrics,
// logs, and publishes change events; the store underneath stays a plain
// best-effort repository.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"recipecost/internal/events"
	"recipecost/internal/models"
	"recipecost/internal/monitoring"
	"recipecost/internal/pricing"
	"recipecost/internal/store"

	"go.uber.org/zap"
)

// Entity label values
const (
	EntityIngredient = "ingredient"
	EntityRecipe     = "recipe"
)

// Metrics receives operation outcomes
type Metrics interface {
	RecordStoreOp(entity, operation, outcome string)
	RecordCalculation(outcome string, finalPrice float64)
	SetEntityCount(entity string, n int)
}

// Publisher receives change events
type Publisher interface {
	Publish(e events.Event)
}

type nopMetrics struct{}

func (nopMetrics) RecordStoreOp(string, string, string) {}
func (nopMetrics) RecordCalculation(string, float64)   {}
func (nopMetrics) SetEntityCount(string, int)          {}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

// Option configures a Service
type Option func(*Service)

// WithMetrics reports operations to m
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublisher sends change events to p
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// Service exposes the catalog operations
type Service struct {
	store   store.Store
	calc    *pricing.Calculator
	log     *zap.Logger
	metrics Metrics
	events  Publisher
}

// NewService creates a catalog over s
func NewService(s store.Store, log *zap.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   s,
		calc:    pricing.NewCalculator(s.Ingredients(), s.Recipes()),
		log:     log,
		metrics: nopMetrics{},
		events:  nopPublisher{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// AddIngredient validates and stores a new ingredient
func (s *Service) AddIngredient(ctx context.Context, in models.Ingredient) (models.Ingredient, error) {
	if err := in.Validate(); err != nil {
		s.metrics.RecordStoreOp(EntityIngredient, "add", monitoring.OutcomeInvalid)
		return in, err
	}
	out, err := s.store.Ingredients().Add(ctx, in)
	if err != nil {
		return failed(s, EntityIngredient, "add", out, err)
	}
	s.changed(ctx, events.Created, EntityIngredient, "add", out.ID)
	return out, nil
}

// UpdateIngredient replaces the ingredient with the given id
func (s *Service) UpdateIngredient(ctx context.Context, id string, in models.Ingredient) (models.Ingredient, bool, error) {
	if err := in.Validate(); err != nil {
		s.metrics.RecordStoreOp(EntityIngredient, "update", monitoring.OutcomeInvalid)
		return in, false, err
	}
	out, found, err := s.store.Ingredients().Update(ctx, id, in)
	if err != nil {
		out, err = failed(s, EntityIngredient, "update", out, err)
		return out, false, err
	}
	if !found {
		s.missed(EntityIngredient, "update", id)
		return out, false, nil
	}
	s.changed(ctx, events.Updated, EntityIngredient, "update", id)
	return out, true, nil
}

// DeleteIngredient removes every ingredient with the given id. Recipes that
// use it are left alone and will fail to price until fixed.
func (s *Service) DeleteIngredient(ctx context.Context, id string) (int, error) {
	n, err := s.store.Ingredients().Delete(ctx, id)
	if err != nil {
		return failed(s, EntityIngredient, "delete", 0, err)
	}
	if n == 0 {
		s.missed(EntityIngredient, "delete", id)
		return 0, nil
	}
	s.changed(ctx, events.Deleted, EntityIngredient, "delete", id)
	return n, nil
}

// ListIngredients returns all ingredients in insertion order
func (s *Service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return s.store.Ingredients().List(ctx)
}

// GetIngredient returns the ingredient with the given id
func (s *Service) GetIngredient(ctx context.Context, id string) (models.Ingredient, bool, error) {
	return s.store.Ingredients().Get(ctx, id)
}

// AddRecipe validates and stores a new recipe. Lines may reference
// ingredients that do not exist yet.
func (s *Service) AddRecipe(ctx context.Context, in models.Recipe) (models.Recipe, error) {
	if err := in.Validate(); err != nil {
		s.metrics.RecordStoreOp(EntityRecipe, "add", monitoring.OutcomeInvalid)
		return in, err
	}
	out, err := s.store.Recipes().Add(ctx, in)
	if err != nil {
		return failed(s, EntityRecipe, "add", out, err)
	}
	s.changed(ctx, events.Created, EntityRecipe, "add", out.ID)
	return out, nil
}

// UpdateRecipe replaces the recipe with the given id
func (s *Service) UpdateRecipe(ctx context.Context, id string, in models.Recipe) (models.Recipe, bool, error) {
	if err := in.Validate(); err != nil {
		s.metrics.RecordStoreOp(EntityRecipe, "update", monitoring.OutcomeInvalid)
		return in, false, err
	}
	out, found, err := s.store.Recipes().Update(ctx, id, in)
	if err != nil {
		out, err = failed(s, EntityRecipe, "update", out, err)
		return out, false, err
	}
	if !found {
		s.missed(EntityRecipe, "update", id)
		return out, false, nil
	}
	s.changed(ctx, events.Updated, EntityRecipe, "update", id)
	return out, true, nil
}

// DeleteRecipe removes every recipe with the given id
func (s *Service) DeleteRecipe(ctx context.Context, id string) (int, error) {
	n, err := s.store.Recipes().Delete(ctx, id)
	if err != nil {
		return failed(s, EntityRecipe, "delete", 0, err)
	}
	if n == 0 {
		s.missed(EntityRecipe, "delete", id)
		return 0, nil
	}
	s.changed(ctx, events.Deleted, EntityRecipe, "delete", id)
	return n, nil
}

// ListRecipes returns all recipes in insertion order
func (s *Service) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.store.Recipes().List(ctx)
}

// GetRecipe returns the recipe with the given id
func (s *Service) GetRecipe(ctx context.Context, id string) (models.Recipe, bool, error) {
	return s.store.Recipes().Get(ctx, id)
}

// Calculate prices a recipe. See pricing.Calculator.Calculate.
func (s *Service) Calculate(ctx context.Context, recipeID string, profitPercentage float64) (models.RecipeResult, bool, error) {
	result, found, err := s.calc.Calculate(ctx, recipeID, profitPercentage)
	switch {
	case errors.Is(err, pricing.ErrDanglingIngredient):
		s.metrics.RecordCalculation(monitoring.OutcomeDangling, 0)
		s.log.Warn("recipe references a missing ingredient", zap.String("recipe_id", recipeID), zap.Error(err))
	case errors.Is(err, pricing.ErrInvalidProfit), errors.Is(err, pricing.ErrInvalidPackWeight):
		s.metrics.RecordCalculation(monitoring.OutcomeInvalid, 0)
	case err != nil:
		s.metrics.RecordCalculation(monitoring.OutcomeError, 0)
		s.log.Error("calculation failed", zap.String("recipe_id", recipeID), zap.Error(err))
	case !found:
		s.metrics.RecordCalculation(monitoring.OutcomeNotFound, 0)
	default:
		s.metrics.RecordCalculation(monitoring.OutcomeOK, result.FinalPrice)
		s.log.Debug("recipe priced",
			zap.String("recipe_id", recipeID),
			zap.Float64("total_cost", result.TotalCost),
			zap.Float64("profit_percentage", profitPercentage),
			zap.Float64("final_price", result.FinalPrice))
	}
	return result, found, err
}

// RecipesUsing returns the recipes with at least one line referencing
// ingredientID
func (s *Service) RecipesUsing(ctx context.Context, ingredientID string) ([]models.Recipe, error) {
	recipes, err := s.store.Recipes().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, 0)
	for _, r := range recipes {
		if r.References(ingredientID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// DanglingLines returns the ingredient ids of a recipe that no longer
// resolve, in line order
func (s *Service) DanglingLines(ctx context.Context, recipeID string) ([]string, bool, error) {
	recipe, found, err := s.store.Recipes().Get(ctx, recipeID)
	if err != nil || !found {
		return nil, found, err
	}

	missing := make([]string, 0)
	for _, line := range recipe.Ingredients {
		_, ok, err := s.store.Ingredients().Get(ctx, line.IngredientID)
		if err != nil {
			return nil, true, fmt.Errorf("failed to load ingredient %s: %w", line.IngredientID, err)
		}
		if !ok {
			missing = append(missing, line.IngredientID)
		}
	}
	return missing, true, nil
}

// RefreshCounts updates the entity gauges from the store
func (s *Service) RefreshCounts(ctx context.Context) {
	s.refreshCount(ctx, EntityIngredient)
	s.refreshCount(ctx, EntityRecipe)
}

func (s *Service) changed(ctx context.Context, eventType, entity, op, id string) {
	s.metrics.RecordStoreOp(entity, op, monitoring.OutcomeOK)
	s.log.Info(entity+" "+eventType, zap.String("id", id))
	s.events.Publish(events.Event{Type: eventType, Entity: entity, ID: id})
	if eventType != events.Updated {
		s.refreshCount(ctx, entity)
	}
}

func (s *Service) missed(entity, op, id string) {
	s.metrics.RecordStoreOp(entity, op, monitoring.OutcomeMiss)
	s.log.Debug(entity+" "+op+" matched nothing", zap.String("id", id))
}

func failed[T any](s *Service, entity, op string, in T, err error) (T, error) {
	s.metrics.RecordStoreOp(entity, op, monitoring.OutcomeError)
	s.log.Error(entity+" "+op+" failed", zap.Error(err))
	return in, err
}

func (s *Service) refreshCount(ctx context.Context, entity string) {
	var (
		n   int
		err error
	)
	switch entity {
	case EntityIngredient:
		var list []models.Ingredient
		list, err = s.store.Ingredients().List(ctx)
		n = len(list)
	case EntityRecipe:
		var list []models.Recipe
		list, err = s.store.Recipes().List(ctx)
		n = len(list)
	}
	if err != nil {
		s.log.Warn("failed to count "+entity+"s", zap.Error(err))
		return
	}
	s.metrics.SetEntityCount(entity, n)
}
