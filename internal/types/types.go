package types

import "fmt"

// AgentType identifies one of the three fixed generation personas.
type AgentType string

const (
	AgentClassic AgentType = "classic"
	AgentFusion  AgentType = "fusion"
	AgentHealthy AgentType = "healthy"
)

// AllAgents returns the personas in their fixed generation order.
func AllAgents() []AgentType {
	return []AgentType{AgentClassic, AgentFusion, AgentHealthy}
}

// Valid reports whether a is one of the three fixed personas.
func (a AgentType) Valid() bool {
	switch a {
	case AgentClassic, AgentFusion, AgentHealthy:
		return true
	}
	return false
}

// DisplayName returns the persona name used in placeholder content.
func (a AgentType) DisplayName() string {
	switch a {
	case AgentClassic:
		return "Classic"
	case AgentFusion:
		return "Fusion"
	case AgentHealthy:
		return "Healthy"
	}
	return string(a)
}

// RecipeInput is the request record for a three-way generation.
// It is immutable once accepted; Validate rejects it before any
// generation is attempted.
type RecipeInput struct {
	Theme            string   `json:"theme"`
	CookingTime      string   `json:"cookingTime"`
	Difficulty       string   `json:"difficulty"`
	SpecialRequests  []string `json:"specialRequests"`
	AvoidIngredients string   `json:"avoidIngredients"`
	Priority         string   `json:"priority"`
}

var (
	cookingTimes = map[string]bool{"30min": true, "60min": true, "unlimited": true}
	difficulties = map[string]bool{"beginner": true, "intermediate": true, "advanced": true}
	priorities   = map[string]bool{"appearance": true, "nutrition": true, "quick": true, "unique": true}
)

// Validate checks every field against its fixed set. A nil
// specialRequests slice means the field was absent from the payload,
// which is rejected the same way a non-array value is.
func (in *RecipeInput) Validate() error {
	if in.Theme == "" {
		return fmt.Errorf("theme must be a non-empty string")
	}
	if !cookingTimes[in.CookingTime] {
		return fmt.Errorf("cookingTime must be one of 30min, 60min, unlimited")
	}
	if !difficulties[in.Difficulty] {
		return fmt.Errorf("difficulty must be one of beginner, intermediate, advanced")
	}
	if in.SpecialRequests == nil {
		return fmt.Errorf("specialRequests must be an array")
	}
	if !priorities[in.Priority] {
		return fmt.Errorf("priority must be one of appearance, nutrition, quick, unique")
	}
	return nil
}

// Recipe is the summary shape returned by the three-way generation.
// After sanitization every field is present and non-empty.
type Recipe struct {
	ID              string    `json:"id"`
	AgentType       AgentType `json:"agentType"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CookingTime     int       `json:"cookingTime"`
	MainIngredients []string  `json:"mainIngredients"`
	Features        []string  `json:"features"`
	ImageURL        string    `json:"imageUrl,omitempty"`
}

// Ingredient is one entry of a detailed recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// CookingStep is one entry of a detailed recipe's ordered step list.
// StepNumber is taken from the source as-is and never renumbered.
type CookingStep struct {
	StepNumber  int    `json:"stepNumber"`
	Instruction string `json:"instruction"`
	Duration    int    `json:"duration,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// NutritionInfo carries the six required numeric nutrition fields.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

// RecipeDetail extends Recipe with the full cooking instructions.
type RecipeDetail struct {
	Recipe
	Ingredients []Ingredient  `json:"ingredients"`
	Steps       []CookingStep `json:"steps"`
	Nutrition   NutritionInfo `json:"nutritionInfo"`
	Tips        []string      `json:"tips"`
	Servings    int           `json:"servings"`
	PrepTime    int           `json:"prepTime"`
	TotalTime   int           `json:"totalTime"`
}

// FeedbackInput is the inbound feedback submission.
type FeedbackInput struct {
	RecipeID       string   `json:"recipeId"`
	Reasons        []string `json:"reasons"`
	Comment        string   `json:"comment"`
	FutureInterest string   `json:"futureInterest"`
	Rating         *int     `json:"rating"`
}

var futureInterests = map[string]bool{"interested": true, "notInterested": true, "requestChange": true}

// Validate applies the feedback reject rules before any persistence.
func (in *FeedbackInput) Validate() error {
	if in.RecipeID == "" {
		return fmt.Errorf("recipeId must be a non-empty string")
	}
	if len(in.Reasons) == 0 {
		return fmt.Errorf("reasons must be a non-empty array")
	}
	if len(in.Comment) > 1000 {
		return fmt.Errorf("comment must be at most 1000 characters")
	}
	if !futureInterests[in.FutureInterest] {
		return fmt.Errorf("futureInterest must be one of interested, notInterested, requestChange")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
