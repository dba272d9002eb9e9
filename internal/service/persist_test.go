package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondate-ai/backend/internal/models"
	"github.com/kondate-ai/backend/internal/types"
)

func sampleDetail(id string) *types.RecipeDetail {
	return &types.RecipeDetail{
		Recipe: types.Recipe{
			ID:              id,
			AgentType:       types.AgentClassic,
			Title:           "Braised Cabbage",
			Description:     "Simple side",
			CookingTime:     35,
			MainIngredients: []string{"cabbage", "butter", "stock"},
			Features:        []string{"cheap", "simple", "cozy"},
		},
		Ingredients: []types.Ingredient{{Name: "cabbage", Amount: "1", Unit: "head"}},
		Steps:       []types.CookingStep{{StepNumber: 1, Instruction: "Braise.", Duration: 30}},
		Nutrition:   types.NutritionInfo{Calories: 150, Protein: 3, Carbs: 12, Fat: 10, Fiber: 5, Sodium: 300},
		Tips:        []string{"Use a heavy pot."},
		Servings:    4,
		PrepTime:    5,
		TotalTime:   35,
	}
}

func TestRecipeWriter(t *testing.T) {
	t.Run("should persist enqueued details before Close returns", func(t *testing.T) {
		db := setupTestDB(t)
		writer := NewRecipeWriter(db, 4)

		writer.Enqueue(sampleDetail("w-1"))
		writer.Enqueue(sampleDetail("w-2"))
		writer.Close()

		var count int64
		require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("should upsert on a repeated id", func(t *testing.T) {
		db := setupTestDB(t)
		writer := NewRecipeWriter(db, 4)

		first := sampleDetail("w-3")
		writer.Enqueue(first)

		second := sampleDetail("w-3")
		second.ImageURL = "https://example.com/cabbage.png"
		writer.Enqueue(second)
		writer.Close()

		var count int64
		require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var stored models.Recipe
		require.NoError(t, db.First(&stored, "id = ?", "w-3").Error)
		assert.Equal(t, "https://example.com/cabbage.png", stored.ImageURL)
	})

	t.Run("should tolerate a repeated Close", func(t *testing.T) {
		writer := NewRecipeWriter(setupTestDB(t), 4)
		writer.Close()
		writer.Close()
	})

	t.Run("should drop writes arriving after Close", func(t *testing.T) {
		db := setupTestDB(t)
		writer := NewRecipeWriter(db, 4)
		writer.Close()

		assert.NotPanics(t, func() {
			writer.Enqueue(sampleDetail("w-4"))
		})

		var count int64
		require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}
