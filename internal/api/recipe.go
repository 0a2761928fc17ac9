package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/internal/model"
	"github.com/pageza/mealfinder/internal/service"
)

// RecipeHandler exposes the catalog lookups as JSON
type RecipeHandler struct {
	catalog service.ICatalogService
	loader  service.IRecipeLoader
	logger  *log.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(catalog service.ICatalogService, loader service.IRecipeLoader, logger *log.Logger) *RecipeHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[api] ", log.LstdFlags)
	}
	return &RecipeHandler{
		catalog: catalog,
		loader:  loader,
		logger:  logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// ListRecipes searches by the s query parameter, or returns the initial set when it is blank.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	term := strings.TrimSpace(c.Query("s"))

	var (
		result model.SearchResult
		err    error
	)
	if term == "" {
		result, err = h.loader.LoadInitialRecipes(c.Request.Context())
	} else {
		result, err = h.catalog.SearchByTerm(c.Request.Context(), term)
		result = result.WithMessage("No recipes found for \"" + term + "\"")
	}
	if err != nil {
		h.logger.Printf("Error searching recipes for %q: %v", term, err)
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to search recipes"})
		return
	}

	if result.NoResults() {
		c.JSON(http.StatusNotFound, gin.H{"error": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": result.Recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.catalog.LookupByID(c.Request.Context(), id)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		h.logger.Printf("Error fetching recipe details %s: %v", id, err)
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load recipe details"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
