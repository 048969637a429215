package api

import (
	"net/http"

	"recipecost/internal/models"

	"github.com/gin-gonic/gin"
)

// ListIngredients returns every ingredient
func (a *RecipeAPI) ListIngredients(c *gin.Context) {
	list, err := a.catalog.ListIngredients(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetIngredient returns one ingredient
func (a *RecipeAPI) GetIngredient(c *gin.Context) {
	ing, found, err := a.catalog.GetIngredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Ingredient")
		return
	}
	c.JSON(http.StatusOK, ing)
}

// CreateIngredient stores a new ingredient
func (a *RecipeAPI) CreateIngredient(c *gin.Context) {
	var in models.Ingredient
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := a.catalog.AddIngredient(c.Request.Context(), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateIngredient replaces an existing ingredient
func (a *RecipeAPI) UpdateIngredient(c *gin.Context) {
	var in models.Ingredient
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, found, err := a.catalog.UpdateIngredient(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	if !found {
		notFound(c, "Ingredient")
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteIngredient removes an ingredient; deleting twice is not an error
func (a *RecipeAPI) DeleteIngredient(c *gin.Context) {
	if _, err := a.catalog.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecipesUsing lists the recipes that reference an ingredient
func (a *RecipeAPI) RecipesUsing(c *gin.Context) {
	recipes, err := a.catalog.RecipesUsing(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}
