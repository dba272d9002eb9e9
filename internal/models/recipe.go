package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/kondate-ai/backend/internal/types"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// IngredientList stores the detailed ingredient entries as JSONB
type IngredientList []types.Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StepList stores the ordered cooking steps as JSONB
type StepList []types.CookingStep

func (l StepList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StepList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// NutritionJSON stores the six-field nutrition record as JSONB
type NutritionJSON types.NutritionInfo

func (n NutritionJSON) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *NutritionJSON) Scan(value interface{}) error {
	return scanJSON(value, n)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

// Recipe is the persisted detailed recipe. The schema mirrors the
// detail shape exactly; no derived fields.
type Recipe struct {
	ID              string         `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	AgentType       string         `gorm:"size:20;not null" json:"agent_type"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	CookingTime     int            `gorm:"not null" json:"cooking_time"`
	PrepTime        int            `gorm:"not null" json:"prep_time"`
	TotalTime       int            `gorm:"not null" json:"total_time"`
	Servings        int            `gorm:"not null;default:4" json:"servings"`
	Difficulty      string         `gorm:"size:20" json:"difficulty"`
	MainIngredients StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"main_ingredients"`
	Ingredients     IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps           StepList       `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Features        StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"features"`
	Tips            StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"tips"`
	Nutrition       NutritionJSON  `gorm:"type:jsonb" json:"nutrition_info"`
	ImageURL        string         `gorm:"size:512" json:"image_url"`
	Tags            StringArray    `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// FromDetail converts a sanitized detailed recipe into its persisted form.
func FromDetail(d *types.RecipeDetail) *Recipe {
	return &Recipe{
		ID:              d.ID,
		AgentType:       string(d.AgentType),
		Title:           d.Title,
		Description:     d.Description,
		CookingTime:     d.CookingTime,
		PrepTime:        d.PrepTime,
		TotalTime:       d.TotalTime,
		Servings:        d.Servings,
		Difficulty:      "intermediate",
		MainIngredients: StringArray(d.MainIngredients),
		Ingredients:     IngredientList(d.Ingredients),
		Steps:           StepList(d.Steps),
		Features:        StringArray(d.Features),
		Tips:            StringArray(d.Tips),
		Nutrition:       NutritionJSON(d.Nutrition),
		ImageURL:        d.ImageURL,
		Tags:            StringArray(d.Features),
	}
}

// ToDetail converts a persisted recipe back to the API detail shape.
func (r *Recipe) ToDetail() *types.RecipeDetail {
	return &types.RecipeDetail{
		Recipe: types.Recipe{
			ID:              r.ID,
			AgentType:       types.AgentType(r.AgentType),
			Title:           r.Title,
			Description:     r.Description,
			CookingTime:     r.CookingTime,
			MainIngredients: []string(r.MainIngredients),
			Features:        []string(r.Features),
			ImageURL:        r.ImageURL,
		},
		Ingredients: []types.Ingredient(r.Ingredients),
		Steps:       []types.CookingStep(r.Steps),
		Nutrition:   types.NutritionInfo(r.Nutrition),
		Tips:        []string(r.Tips),
		Servings:    r.Servings,
		PrepTime:    r.PrepTime,
		TotalTime:   r.TotalTime,
	}
}
