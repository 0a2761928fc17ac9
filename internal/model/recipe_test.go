package model

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredients(t *testing.T) {
	t.Run("should skip blank slots and keep slot order", func(t *testing.T) {
		record := RecipeRecord{
			"strIngredient1": "Flour",
			"strMeasure1":    "200g",
			"strIngredient2": "",
			"strIngredient3": "Salt",
			"strMeasure3":    "",
		}

		assert.Equal(t, []string{"200g Flour", "Salt"}, Ingredients(record))
	})

	t.Run("should treat whitespace-only names and nulls as empty", func(t *testing.T) {
		record := RecipeRecord{
			"strIngredient1": "   ",
			"strMeasure1":    "1 cup",
			"strIngredient2": nil,
			"strIngredient4": "Eggs",
			"strMeasure4":    " 2 ",
		}

		assert.Equal(t, []string{"2 Eggs"}, Ingredients(record))
	})

	t.Run("should scan all twenty slots", func(t *testing.T) {
		record := RecipeRecord{}
		for i := 1; i <= 21; i++ {
			record[fmt.Sprintf("strIngredient%d", i)] = fmt.Sprintf("item%d", i)
		}

		got := Ingredients(record)
		require.Len(t, got, IngredientSlots)
		assert.Equal(t, "item1", got[0])
		assert.Equal(t, "item20", got[19])
	})

	t.Run("should return an empty list for an empty record", func(t *testing.T) {
		got := Ingredients(RecipeRecord{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestExcerpt(t *testing.T) {
	t.Run("should cut long instructions to 100 characters plus ellipsis", func(t *testing.T) {
		got := Excerpt(strings.Repeat("a", 250))
		assert.Equal(t, strings.Repeat("a", 100)+"...", got)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), 103)
	})

	t.Run("should count characters not bytes", func(t *testing.T) {
		got := Excerpt(strings.Repeat("é", 150))
		assert.Equal(t, 103, utf8.RuneCountInString(got))
	})

	t.Run("should keep short instructions whole", func(t *testing.T) {
		assert.Equal(t, "Boil water....", Excerpt("Boil water."))
	})

	t.Run("should use fallback when instructions are absent", func(t *testing.T) {
		assert.Equal(t, NoDescription, Excerpt(""))
	})
}

func TestNewRecipeSummary(t *testing.T) {
	t.Run("should map catalog fields", func(t *testing.T) {
		summary := NewRecipeSummary(RecipeRecord{
			"idMeal":          "52772",
			"strMeal":         "Teriyaki Chicken Casserole",
			"strMealThumb":    "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
			"strInstructions": "Preheat oven.",
		})

		assert.Equal(t, "52772", summary.ID)
		assert.Equal(t, "Teriyaki Chicken Casserole", summary.Title)
		assert.Equal(t, "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg", summary.ThumbnailURL)
		assert.Equal(t, "Preheat oven....", summary.InstructionsExcerpt)
	})

	t.Run("should fall back to placeholders", func(t *testing.T) {
		summary := NewRecipeSummary(RecipeRecord{"idMeal": "1", "strMealThumb": nil})

		assert.Equal(t, UnknownTitle, summary.Title)
		assert.Equal(t, CardPlaceholderImage, summary.ThumbnailURL)
		assert.Equal(t, NoDescription, summary.InstructionsExcerpt)
	})
}

func TestNewRecipeDetail(t *testing.T) {
	detail := NewRecipeDetail(RecipeRecord{
		"idMeal":         "7",
		"strIngredient1": "Rice",
		"strMeasure1":    "1 cup",
		"strCategory":    42,
	})

	assert.Equal(t, "7", detail.ID)
	assert.Equal(t, UnknownTitle, detail.Title)
	assert.Equal(t, DetailPlaceholderImage, detail.ThumbnailURL)
	assert.Equal(t, UnknownCategory, detail.Category)
	assert.Equal(t, UnknownArea, detail.Area)
	assert.Equal(t, NoInstructions, detail.Instructions)
	assert.Equal(t, []string{"1 cup Rice"}, detail.Ingredients)
}

func TestSearchResult(t *testing.T) {
	recipes := make([]RecipeSummary, 20)
	for i := range recipes {
		recipes[i] = RecipeSummary{ID: fmt.Sprint(i)}
	}

	t.Run("should truncate to at most n keeping order", func(t *testing.T) {
		got := Found(recipes).Truncate(12)
		require.Len(t, got.Recipes, 12)
		assert.Equal(t, "0", got.Recipes[0].ID)
		assert.Equal(t, "11", got.Recipes[11].ID)
		assert.Len(t, recipes, 20, "source must be untouched")
	})

	t.Run("should leave short results alone", func(t *testing.T) {
		got := Found(recipes[:3]).Truncate(12)
		assert.Len(t, got.Recipes, 3)
	})

	t.Run("should treat an empty list as no results", func(t *testing.T) {
		assert.True(t, Found(nil).NoResults())
		assert.True(t, NoResults("none").NoResults())
		assert.False(t, Found(recipes).NoResults())
	})

	t.Run("should only replace message of empty results", func(t *testing.T) {
		assert.Equal(t, "x", Found(nil).WithMessage("x").Message)
		assert.Empty(t, Found(recipes).WithMessage("x").Message)
	})
}
