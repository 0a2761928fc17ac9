package service

import (
	"context"

	"github.com/pageza/mealfinder/internal/model"
)

// RecipeSearcher runs a term search against the catalog.
type RecipeSearcher interface {
	SearchByTerm(ctx context.Context, term string) (model.SearchResult, error)
}

// ICatalogService defines the read-only catalog operations.
type ICatalogService interface {
	RecipeSearcher
	LookupByID(ctx context.Context, id string) (*model.RecipeDetail, error)
}

// IRecipeLoader produces the initial grid.
type IRecipeLoader interface {
	LoadInitialRecipes(ctx context.Context) (model.SearchResult, error)
}

var (
	_ ICatalogService = (*CatalogClient)(nil)
	_ IRecipeLoader   = (*RecipeLoader)(nil)
)
