package model

// SearchResult is either a non-empty ordered list of summaries or an explicit
// "no results" outcome carrying the message to show in place of the grid.
type SearchResult struct {
	Recipes []RecipeSummary `json:"recipes,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Found builds a result from summaries. An empty list becomes a no-results
// outcome with an empty message.
func Found(recipes []RecipeSummary) SearchResult {
	if len(recipes) == 0 {
		return SearchResult{}
	}
	return SearchResult{Recipes: recipes}
}

// NoResults builds an empty outcome with the given message.
func NoResults(message string) SearchResult {
	return SearchResult{Message: message}
}

// NoResults reports whether the result holds no recipes.
func (r SearchResult) NoResults() bool {
	return len(r.Recipes) == 0
}

// Truncate returns a copy holding at most n recipes.
func (r SearchResult) Truncate(n int) SearchResult {
	if n < 0 || len(r.Recipes) <= n {
		return r
	}
	recipes := make([]RecipeSummary, n)
	copy(recipes, r.Recipes[:n])
	return SearchResult{Recipes: recipes, Message: r.Message}
}

// WithMessage returns a copy whose message is replaced when it holds no recipes.
func (r SearchResult) WithMessage(message string) SearchResult {
	if r.NoResults() {
		r.Message = message
	}
	return r
}
