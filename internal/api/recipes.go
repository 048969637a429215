package api

import (
	"net/http"

	"recipecost/internal/models"

	"github.com/gin-gonic/gin"
)

// ListRecipes returns every recipe
func (a *RecipeAPI) ListRecipes(c *gin.Context) {
	list, err := a.catalog.ListRecipes(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetRecipe returns one recipe
func (a *RecipeAPI) GetRecipe(c *gin.Context) {
	r, found, err := a.catalog.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Recipe")
		return
	}
	c.JSON(http.StatusOK, r)
}

// CreateRecipe stores a new recipe
func (a *RecipeAPI) CreateRecipe(c *gin.Context) {
	var in models.Recipe
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := a.catalog.AddRecipe(c.Request.Context(), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateRecipe replaces an existing recipe
func (a *RecipeAPI) UpdateRecipe(c *gin.Context) {
	var in models.Recipe
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, found, err := a.catalog.UpdateRecipe(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Recipe")
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteRecipe removes a recipe; deleting twice is not an error
func (a *RecipeAPI) DeleteRecipe(c *gin.Context) {
	if _, err := a.catalog.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CalculateRecipe prices a recipe at the profit given by ?profit=
func (a *RecipeAPI) CalculateRecipe(c *gin.Context) {
	pct, err := a.profitFrom(c)
	if err != nil {
		a.respondError(c, err)
		return
	}

	result, found, err := a.catalog.Calculate(c.Request.Context(), c.Param("id"), pct)
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Recipe")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DanglingLines lists the ingredient ids of a recipe that no longer exist
func (a *RecipeAPI) DanglingLines(c *gin.Context) {
	missing, found, err := a.catalog.DanglingLines(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"missingIngredientIds": missing})
}
