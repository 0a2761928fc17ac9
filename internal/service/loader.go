package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/pageza/mealfinder/internal/model"
)

// FallbackLimit caps the number of recipes kept from the empty-term fallback search.
const FallbackLimit = 12

// NoInitialRecipesMessage is shown when neither the seed nor the fallback search found anything.
const NoInitialRecipesMessage = "No recipes found. Please try searching for something specific."

// SeedTerms are the categories the initial load picks from.
var SeedTerms = []string{"chicken", "beef", "pasta", "salad", "dessert"}

// RecipeLoader produces the grid shown before the user has searched.
type RecipeLoader struct {
	searcher RecipeSearcher
	pick     func(n int) int
}

// NewRecipeLoader creates a loader that seeds from SeedTerms uniformly at random.
func NewRecipeLoader(searcher RecipeSearcher) *RecipeLoader {
	return &RecipeLoader{searcher: searcher, pick: rand.IntN}
}

// WithPicker replaces the random index source. pick must return a value in [0, n).
func (l *RecipeLoader) WithPicker(pick func(n int) int) *RecipeLoader {
	l.pick = pick
	return l
}

// LoadInitialRecipes searches a random seed term and, only if that finds
// nothing, retries once with the empty term keeping at most FallbackLimit recipes.
func (l *RecipeLoader) LoadInitialRecipes(ctx context.Context) (model.SearchResult, error) {
	term := SeedTerms[l.pick(len(SeedTerms))]

	result, err := l.searcher.SearchByTerm(ctx, term)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("seed search %q: %w", term, err)
	}
	if !result.NoResults() {
		return result, nil
	}

	fallback, err := l.searcher.SearchByTerm(ctx, "")
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("fallback search: %w", err)
	}
	if fallback.NoResults() {
		return model.NoResults(NoInitialRecipesMessage), nil
	}
	return fallback.Truncate(FallbackLimit), nil
}
