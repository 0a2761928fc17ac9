package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// IngredientSlots is the number of positional ingredient/measure pairs in a catalog record.
	IngredientSlots = 20

	// ExcerptLength is the number of characters of instructions shown on a card.
	ExcerptLength = 100

	CardPlaceholderImage   = "https://via.placeholder.com/300x200?text=No+Image"
	DetailPlaceholderImage = "https://via.placeholder.com/400x300?text=No+Image"

	UnknownTitle    = "Unknown Recipe"
	UnknownCategory = "Unknown Category"
	UnknownArea     = "Unknown Origin"
	NoDescription   = "No description available"
	NoInstructions  = "No instructions available"
	excerptEllipsis = "..."
)

// RecipeRecord is the raw flat mapping the catalog returns for one recipe.
// Values are usually strings but may be null or missing.
type RecipeRecord map[string]any

// Field returns the string value stored under key, or "" when it is absent,
// null or not a string.
func (r RecipeRecord) Field(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// RecipeSummary is the data shown on one grid card.
type RecipeSummary struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	ThumbnailURL        string `json:"thumbnail_url"`
	InstructionsExcerpt string `json:"instructions_excerpt"`
}

// RecipeDetail is the data shown in the detail overlay.
type RecipeDetail struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

// NewRecipeSummary derives a card summary from a raw record.
func NewRecipeSummary(r RecipeRecord) RecipeSummary {
	return RecipeSummary{
		ID:                  r.Field("idMeal"),
		Title:               orDefault(r.Field("strMeal"), UnknownTitle),
		ThumbnailURL:        orDefault(r.Field("strMealThumb"), CardPlaceholderImage),
		InstructionsExcerpt: Excerpt(r.Field("strInstructions")),
	}
}

// NewRecipeDetail derives the overlay detail from a raw record.
func NewRecipeDetail(r RecipeRecord) *RecipeDetail {
	return &RecipeDetail{
		ID:           r.Field("idMeal"),
		Title:        orDefault(r.Field("strMeal"), UnknownTitle),
		ThumbnailURL: orDefault(r.Field("strMealThumb"), DetailPlaceholderImage),
		Category:     orDefault(r.Field("strCategory"), UnknownCategory),
		Area:         orDefault(r.Field("strArea"), UnknownArea),
		Instructions: orDefault(r.Field("strInstructions"), NoInstructions),
		Ingredients:  Ingredients(r),
	}
}

// Ingredients scans the positional slots 1..20 in order. A slot contributes an
// entry only when its name is non-blank; the measure is prefixed when present.
func Ingredients(r RecipeRecord) []string {
	ingredients := make([]string, 0, IngredientSlots)
	for i := 1; i <= IngredientSlots; i++ {
		name := strings.TrimSpace(r.Field(fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		measure := strings.TrimSpace(r.Field(fmt.Sprintf("strMeasure%d", i)))
		if measure != "" {
			ingredients = append(ingredients, measure+" "+name)
		} else {
			ingredients = append(ingredients, name)
		}
	}
	return ingredients
}

// Excerpt returns the first ExcerptLength characters of instructions followed
// by an ellipsis, or NoDescription when there are no instructions.
func Excerpt(instructions string) string {
	if instructions == "" {
		return NoDescription
	}
	if utf8.RuneCountInString(instructions) > ExcerptLength {
		instructions = string([]rune(instructions)[:ExcerptLength])
	}
	return instructions + excerptEllipsis
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
