// Package api exposes the catalog over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"recipecost/internal/auth"
	"recipecost/internal/catalog"
	"recipecost/internal/logging"
	"recipecost/internal/models"
	"recipecost/internal/pricing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the HTTP surface
type Options struct {
	// JWTSecret protects mutating routes when non-empty
	JWTSecret string
	// AllowedOrigins enables CORS for browser clients
	AllowedOrigins []string
	// DefaultProfitPercentage is used when a cost request has no profit
	DefaultProfitPercentage float64
	// Events, when set, is mounted at /ws
	Events gin.HandlerFunc
}

// RecipeAPI represents the HTTP handler for the catalog
type RecipeAPI struct {
	Router        *gin.Engine
	catalog       *catalog.Service
	log           *zap.Logger
	defaultProfit float64
}

// NewRecipeAPI creates the router and registers every route
func NewRecipeAPI(svc *catalog.Service, log *zap.Logger, opts Options) *RecipeAPI {
	router := gin.New()
	router.Use(logging.GinLogger(log), gin.Recovery())

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	api := &RecipeAPI{
		Router:        router,
		catalog:       svc,
		log:           log,
		defaultProfit: opts.DefaultProfitPercentage,
	}

	api.setupRoutes(auth.Middleware(opts.JWTSecret), opts.Events)
	return api
}

// setupRoutes configures all API endpoints
func (a *RecipeAPI) setupRoutes(requireAuth, events gin.HandlerFunc) {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if events != nil {
		a.Router.GET("/ws", events)
	}

	v1 := a.Router.Group("/api/v1")
	{
		// Ingredients
		v1.GET("/ingredients", a.ListIngredients)
		v1.GET("/ingredients/:id", a.GetIngredient)
		v1.GET("/ingredients/:id/recipes", a.RecipesUsing)
		v1.POST("/ingredients", requireAuth, a.CreateIngredient)
		v1.PUT("/ingredients/:id", requireAuth, a.UpdateIngredient)
		v1.DELETE("/ingredients/:id", requireAuth, a.DeleteIngredient)

		// Recipes
		v1.GET("/recipes", a.ListRecipes)
		v1.GET("/recipes/:id", a.GetRecipe)
		v1.GET("/recipes/:id/cost", a.CalculateRecipe)
		v1.GET("/recipes/:id/dangling", a.DanglingLines)
		v1.POST("/recipes", requireAuth, a.CreateRecipe)
		v1.PUT("/recipes/:id", requireAuth, a.UpdateRecipe)
		v1.DELETE("/recipes/:id", requireAuth, a.DeleteRecipe)
	}
}

// profitFrom reads the profit query parameter, falling back to the default
func (a *RecipeAPI) profitFrom(c *gin.Context) (float64, error) {
	raw, ok := c.GetQuery("profit")
	if !ok || raw == "" {
		return a.defaultProfit, nil
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pricing.ErrInvalidProfit
	}
	return pct, nil
}

// respondError maps domain errors to HTTP status codes
func (a *RecipeAPI) respondError(c *gin.Context, err error) {
	var dangling *pricing.DanglingIngredientError

	switch {
	case errors.Is(err, models.ErrInvalid), errors.Is(err, pricing.ErrInvalidProfit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &dangling):
		c.JSON(http.StatusConflict, gin.H{
			"error":        err.Error(),
			"recipeId":     dangling.RecipeID,
			"ingredientId": dangling.IngredientID,
		})
	case errors.Is(err, pricing.ErrInvalidPackWeight):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
