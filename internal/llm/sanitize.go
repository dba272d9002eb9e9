package llm

import (
	"fmt"
	"log"

	"github.com/kondate-ai/backend/internal/types"
)

// Placeholder content used when the model leaves gaps. Exported as
// little as possible; tests compare against these through the
// sanitizer's behavior.
var (
	placeholderMainIngredients = []string{"ingredient 1", "ingredient 2", "ingredient 3"}
	placeholderFeatures        = []string{"delicious", "easy", "nutritious"}
	placeholderDetailFeatures  = []string{"homemade", "nutritious", "delicious"}
	placeholderTips            = []string{"Adjust the seasoning to your taste."}
	placeholderNutrition       = types.NutritionInfo{Calories: 300, Protein: 15, Carbs: 30, Fat: 10, Fiber: 5, Sodium: 800}
	placeholderSteps           = []types.CookingStep{
		{StepNumber: 1, Instruction: "Prepare the ingredients.", Duration: 5},
		{StepNumber: 2, Instruction: "Start cooking.", Duration: 25},
	}
)

// SanitizeSummary fills every summary gap in place and reports whether
// the draft is acceptable. A blank title is the one terminal gap: it
// returns false and the caller substitutes a fallback recipe.
func SanitizeSummary(d *RecipeDraft) bool {
	if d.Title == "" {
		log.Printf("[Sanitizer] missing or empty title field")
		return false
	}

	if d.Description == "" {
		log.Printf("[Sanitizer] missing description, auto-filling")
		d.Description = fmt.Sprintf("%s's recipe", d.Title)
	}
	if d.CookingTime <= 0 {
		d.CookingTime = 30
	}
	if len(d.MainIngredients) == 0 {
		d.MainIngredients = append([]string(nil), placeholderMainIngredients...)
	}
	if len(d.Features) == 0 {
		d.Features = append([]string(nil), placeholderFeatures...)
	}
	return true
}

// BuildRecipe assembles the summary recipe from a sanitized draft.
func BuildRecipe(d *RecipeDraft, id string, agent types.AgentType) types.Recipe {
	return types.Recipe{
		ID:              id,
		AgentType:       agent,
		Title:           d.Title,
		Description:     d.Description,
		CookingTime:     d.CookingTime,
		MainIngredients: d.MainIngredients,
		Features:        d.Features,
		ImageURL:        d.ImageURL,
	}
}

// FallbackRecipe is the fully-populated placeholder substituted when a
// persona's pipeline fails end to end.
func FallbackRecipe(id string, agent types.AgentType) types.Recipe {
	return types.Recipe{
		ID:              id,
		AgentType:       agent,
		Title:           fmt.Sprintf("%s Chef's Special Recipe", agent.DisplayName()),
		Description:     "A delicious recipe suggested by AI.",
		CookingTime:     30,
		MainIngredients: []string{"fresh ingredients", "seasonings", "spices"},
		Features:        []string{"healthy", "easy to make", "authentic taste"},
	}
}

// SanitizeDetail builds a complete detailed recipe from a draft. There
// is no reject path: the identity is already committed, so every gap
// is defaulted. Step numbering from the source is trusted as-is.
func SanitizeDetail(d *RecipeDraft, id, title string, agent types.AgentType) *types.RecipeDetail {
	ingredients := make([]types.Ingredient, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if ing.Name == "" {
			ing.Name = "ingredient"
		}
		if ing.Amount == "" {
			ing.Amount = "to taste"
		}
		if ing.Unit == "" {
			ing.Unit = "to taste"
		}
		ingredients = append(ingredients, types.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		})
	}
	if len(ingredients) == 0 {
		ingredients = []types.Ingredient{
			{Name: "ingredient", Amount: "to taste", Unit: "to taste", Notes: "prepare according to the recipe"},
		}
	}

	mainIngredients := d.MainIngredients
	if len(mainIngredients) == 0 {
		for i, ing := range ingredients {
			if i == 3 {
				break
			}
			mainIngredients = append(mainIngredients, ing.Name)
		}
	}

	steps := d.Steps
	if len(steps) == 0 {
		steps = append([]types.CookingStep(nil), placeholderSteps...)
	}

	// Presence of the nutrition key is accepted as-is; only a missing
	// record gets the placeholder.
	nutrition := placeholderNutrition
	if d.Nutrition != nil {
		nutrition = *d.Nutrition
	}

	tips := d.Tips
	if len(tips) == 0 {
		tips = append([]string(nil), placeholderTips...)
	}

	features := d.Features
	if len(features) == 0 {
		features = append([]string(nil), placeholderDetailFeatures...)
	}

	description := d.Description
	if description == "" {
		description = fmt.Sprintf("%s's recipe", title)
	}

	servings := d.Servings
	if servings <= 0 {
		servings = 4
	}
	prepTime := d.PrepTime
	if prepTime <= 0 {
		prepTime = 15
	}
	totalTime := d.TotalTime
	if totalTime <= 0 {
		totalTime = d.CookingTime
	}
	if totalTime <= 0 {
		totalTime = 30
	}

	return &types.RecipeDetail{
		Recipe: types.Recipe{
			ID:              id,
			AgentType:       agent,
			Title:           title,
			Description:     description,
			CookingTime:     totalTime,
			MainIngredients: mainIngredients,
			Features:        features,
			ImageURL:        d.ImageURL,
		},
		Ingredients: ingredients,
		Steps:       steps,
		Nutrition:   nutrition,
		Tips:        tips,
		Servings:    servings,
		PrepTime:    prepTime,
		TotalTime:   totalTime,
	}
}
