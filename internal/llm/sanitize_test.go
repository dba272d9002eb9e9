package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondate-ai/backend/internal/types"
)

func TestSanitizeSummary(t *testing.T) {
	t.Run("should reject a blank title", func(t *testing.T) {
		d := &RecipeDraft{Description: "has everything but a title"}

		assert.False(t, SanitizeSummary(d))
	})

	t.Run("should fill every gap around a present title", func(t *testing.T) {
		d := &RecipeDraft{Title: "Okonomiyaki"}

		ok := SanitizeSummary(d)

		require.True(t, ok)
		assert.Equal(t, "Okonomiyaki's recipe", d.Description)
		assert.Equal(t, 30, d.CookingTime)
		assert.Len(t, d.MainIngredients, 3)
		assert.Len(t, d.Features, 3)
	})

	t.Run("should leave complete drafts untouched", func(t *testing.T) {
		d := &RecipeDraft{
			Title:           "Ramen",
			Description:     "Rich broth",
			CookingTime:     90,
			MainIngredients: []string{"noodles", "pork"},
			Features:        []string{"hearty"},
		}

		require.True(t, SanitizeSummary(d))
		assert.Equal(t, "Rich broth", d.Description)
		assert.Equal(t, 90, d.CookingTime)
		assert.Equal(t, []string{"noodles", "pork"}, d.MainIngredients)
		assert.Equal(t, []string{"hearty"}, d.Features)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		d := &RecipeDraft{Title: "Salad"}
		require.True(t, SanitizeSummary(d))
		before := *d

		require.True(t, SanitizeSummary(d))
		assert.Equal(t, before.Description, d.Description)
		assert.Equal(t, before.MainIngredients, d.MainIngredients)
	})
}

func TestFallbackRecipe(t *testing.T) {
	r := FallbackRecipe("id-1", types.AgentFusion)

	assert.Equal(t, "id-1", r.ID)
	assert.Equal(t, types.AgentFusion, r.AgentType)
	assert.Equal(t, "Fusion Chef's Special Recipe", r.Title)
	assert.Equal(t, 30, r.CookingTime)
	assert.Equal(t, []string{"fresh ingredients", "seasonings", "spices"}, r.MainIngredients)
	assert.Equal(t, []string{"healthy", "easy to make", "authentic taste"}, r.Features)
}

func TestSanitizeDetail(t *testing.T) {
	t.Run("should default everything for an empty draft", func(t *testing.T) {
		detail := SanitizeDetail(&RecipeDraft{}, "id-2", "Gyoza", types.AgentClassic)

		assert.Equal(t, "id-2", detail.ID)
		assert.Equal(t, "Gyoza", detail.Title)
		assert.Equal(t, "Gyoza's recipe", detail.Description)
		require.Len(t, detail.Ingredients, 1)
		assert.Equal(t, "ingredient", detail.Ingredients[0].Name)
		assert.Equal(t, "to taste", detail.Ingredients[0].Amount)
		require.Len(t, detail.Steps, 2)
		assert.Equal(t, 1, detail.Steps[0].StepNumber)
		assert.Equal(t, float64(300), detail.Nutrition.Calories)
		assert.Equal(t, 4, detail.Servings)
		assert.Equal(t, 15, detail.PrepTime)
		assert.Equal(t, 30, detail.TotalTime)
		assert.Equal(t, detail.TotalTime, detail.CookingTime)
	})

	t.Run("should fill gaps inside present ingredients", func(t *testing.T) {
		d := &RecipeDraft{
			Ingredients: []DraftIngredient{{Name: "soy sauce"}, {Amount: "200", Unit: "g"}},
		}

		detail := SanitizeDetail(d, "id-3", "Stir Fry", types.AgentClassic)

		require.Len(t, detail.Ingredients, 2)
		assert.Equal(t, "soy sauce", detail.Ingredients[0].Name)
		assert.Equal(t, "to taste", detail.Ingredients[0].Amount)
		assert.Equal(t, "ingredient", detail.Ingredients[1].Name)
		assert.Equal(t, "200", detail.Ingredients[1].Amount)
	})

	t.Run("should derive main ingredients from the ingredient list", func(t *testing.T) {
		d := &RecipeDraft{
			Ingredients: []DraftIngredient{
				{Name: "chicken"}, {Name: "rice"}, {Name: "egg"}, {Name: "scallion"},
			},
		}

		detail := SanitizeDetail(d, "id-4", "Oyakodon", types.AgentClassic)

		assert.Equal(t, []string{"chicken", "rice", "egg"}, detail.MainIngredients)
	})

	t.Run("should preserve source step numbering", func(t *testing.T) {
		d := &RecipeDraft{
			Steps: []types.CookingStep{
				{StepNumber: 3, Instruction: "Serve."},
				{StepNumber: 1, Instruction: "Chop."},
			},
		}

		detail := SanitizeDetail(d, "id-5", "Salad", types.AgentHealthy)

		require.Len(t, detail.Steps, 2)
		assert.Equal(t, 3, detail.Steps[0].StepNumber)
		assert.Equal(t, 1, detail.Steps[1].StepNumber)
	})

	t.Run("should accept a present nutrition record as-is", func(t *testing.T) {
		d := &RecipeDraft{Nutrition: &types.NutritionInfo{Calories: 120}}

		detail := SanitizeDetail(d, "id-6", "Broth", types.AgentHealthy)

		assert.Equal(t, float64(120), detail.Nutrition.Calories)
		assert.Zero(t, detail.Nutrition.Protein)
	})

	t.Run("should fall back to cooking time then thirty for total time", func(t *testing.T) {
		withCooking := SanitizeDetail(&RecipeDraft{CookingTime: 50}, "id-7", "Stew", types.AgentClassic)
		assert.Equal(t, 50, withCooking.TotalTime)

		explicit := SanitizeDetail(&RecipeDraft{CookingTime: 50, TotalTime: 70}, "id-8", "Stew", types.AgentClassic)
		assert.Equal(t, 70, explicit.TotalTime)

		neither := SanitizeDetail(&RecipeDraft{}, "id-9", "Stew", types.AgentClassic)
		assert.Equal(t, 30, neither.TotalTime)
	})
}
