package llm

import (
	"fmt"
	"strings"

	"github.com/kondate-ai/backend/internal/types"
)

// PromptBuilder maps a validated request and a persona to the
// natural-language instruction handed to the model. Pure; no state.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder { return &PromptBuilder{} }

func cookingTimeText(t string) string {
	switch t {
	case "30min":
		return "within 30 minutes"
	case "60min":
		return "within 1 hour"
	case "unlimited":
		return "no time limit"
	}
	return t
}

func difficultyText(d string) string {
	switch d {
	case "beginner":
		return "suitable for beginners"
	case "intermediate":
		return "for intermediate cooks"
	case "advanced":
		return "for advanced cooks"
	}
	return d
}

func priorityText(p string) string {
	switch p {
	case "appearance":
		return "beautiful presentation"
	case "nutrition":
		return "nutritional balance"
	case "quick":
		return "convenience and speed"
	case "unique":
		return "originality and uniqueness"
	}
	return p
}

var agentPersonas = map[types.AgentType]string{
	types.AgentClassic: "You are an experienced home-cooking expert. You propose delicious, reliable recipes that stay true to the basics and that anyone can make.",
	types.AgentFusion:  "You are a creative fusion cuisine chef. You propose original recipes that combine elements from different food cultures into new taste experiences.",
	types.AgentHealthy: "You are a health-conscious chef with a deep knowledge of nutrition. You propose wholesome, nutritionally balanced recipes using low-calorie, nutrient-dense ingredients.",
}

// ForAgent builds the summary-generation prompt for one persona.
// It fails only when the persona is outside the fixed set.
func (b *PromptBuilder) ForAgent(agent types.AgentType, input types.RecipeInput) (string, error) {
	persona, ok := agentPersonas[agent]
	if !ok {
		return "", fmt.Errorf("unknown agent type: %s", agent)
	}

	special := strings.Join(input.SpecialRequests, ", ")
	if special == "" {
		special = "none"
	}
	avoid := input.AvoidIngredients
	if avoid == "" {
		avoid = "none"
	}

	return fmt.Sprintf(`%s

Propose exactly one dish for the following conditions:

Conditions:
- Theme: %s
- Cooking time: %s
- Difficulty: %s
- Special requests: %s
- Ingredients to avoid: %s
- Priority: %s

Respond strictly in the following JSON format:
{
  "title": "Dish name",
  "description": "Describe the dish in 2-3 sentences. This field is required.",
  "cookingTime": 30,
  "mainIngredients": ["main ingredient 1", "main ingredient 2", "main ingredient 3"],
  "features": ["feature 1", "feature 2", "feature 3"]
}

Important:
1. description is required. Do not leave it as an empty string.
2. cookingTime must be a number (for example: 30).
3. Each array must contain at least 3 elements.
4. Do not include any text outside the JSON object.`,
		persona,
		input.Theme,
		cookingTimeText(input.CookingTime),
		difficultyText(input.Difficulty),
		special,
		avoid,
		priorityText(input.Priority),
	), nil
}

var agentDetailContext = map[types.AgentType]string{
	types.AgentClassic: "Favor traditional, homestyle cooking techniques and",
	types.AgentFusion:  "Apply creative, innovative cooking techniques and",
	types.AgentHealthy: "Choose preparation methods that maximize nutritional value and",
}

// ForDetail builds the detail-generation prompt for a recipe title.
func (b *PromptBuilder) ForDetail(title string, agent types.AgentType) string {
	context := agentDetailContext[agent]
	if context == "" {
		context = "Use clear, dependable techniques and"
	}

	return fmt.Sprintf(`Create a detailed recipe for "%s". %s explain each step carefully so anyone can follow it.

Respond strictly in the following JSON format:
{
  "ingredients": [
    {
      "name": "ingredient name",
      "amount": "quantity",
      "unit": "unit",
      "notes": "notes (optional)"
    }
  ],
  "steps": [
    {
      "stepNumber": 1,
      "instruction": "concrete instruction",
      "duration": minutes (optional),
      "temperature": "temperature (optional)",
      "tips": "tip (optional)"
    }
  ],
  "nutritionInfo": {
    "calories": calories,
    "protein": protein in grams,
    "carbs": carbohydrates in grams,
    "fat": fat in grams,
    "fiber": fiber in grams,
    "sodium": sodium in milligrams
  },
  "tips": ["cooking tip 1", "cooking tip 2"],
  "servings": number of servings,
  "prepTime": preparation minutes,
  "totalTime": total cooking minutes
}

The ingredients array must contain at least 1 entry and the steps array at least 1 entry.
Important: respond with valid JSON only. Do not include any explanation or characters outside the JSON object.`, title, context)
}
