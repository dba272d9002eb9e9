package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kondate-ai/backend/internal/types"
)

// RecipeDraft is the loosely-typed intermediate between the model's
// raw text and the sanitized recipe shapes. Every recognized field is
// optional; unrecognized or wrong-typed fields simply stay at their
// zero value so the sanitizer's defaulting is exhaustive.
type RecipeDraft struct {
	Title           string
	Description     string
	CookingTime     int
	MainIngredients []string
	Features        []string
	Ingredients     []DraftIngredient
	Steps           []types.CookingStep
	Nutrition       *types.NutritionInfo
	Tips            []string
	Servings        int
	PrepTime        int
	TotalTime       int
	ImageURL        string
}

// DraftIngredient mirrors one ingredient entry before defaulting.
type DraftIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes"`
}

var leadingNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

// flexNumber decodes a JSON number or a numeric string.
func flexNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if m := leadingNumber.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

func flexInt(raw json.RawMessage) (int, bool) {
	f, ok := flexNumber(raw)
	return int(f), ok
}

func flexString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return "", false
}

func flexStringSlice(raw json.RawMessage) ([]string, bool) {
	var out []string
	if err := json.Unmarshal(raw, &out); err == nil {
		return out, true
	}
	return nil, false
}

// UnmarshalJSON decodes a draft field by field, ignoring fields that
// fail to decode. It errors only when the top level is not an object.
func (d *RecipeDraft) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("draft is not an object: %w", err)
	}

	var title, name string
	for key, raw := range fields {
		switch strings.ToLower(key) {
		case "title":
			if v, ok := flexString(raw); ok {
				title = strings.TrimSpace(v)
			}
		case "name":
			if v, ok := flexString(raw); ok {
				name = strings.TrimSpace(v)
			}
		case "description":
			if v, ok := flexString(raw); ok {
				d.Description = strings.TrimSpace(v)
			}
		case "cookingtime":
			if v, ok := flexInt(raw); ok {
				d.CookingTime = v
			}
		case "mainingredients":
			if v, ok := flexStringSlice(raw); ok {
				d.MainIngredients = v
			}
		case "features":
			if v, ok := flexStringSlice(raw); ok {
				d.Features = v
			}
		case "ingredients":
			d.Ingredients = decodeIngredients(raw)
		case "steps":
			d.Steps = decodeSteps(raw)
		case "nutritioninfo", "nutrition":
			d.Nutrition = decodeNutrition(raw)
		case "tips":
			if v, ok := flexStringSlice(raw); ok {
				d.Tips = v
			}
		case "servings":
			if v, ok := flexInt(raw); ok {
				d.Servings = v
			}
		case "preptime":
			if v, ok := flexInt(raw); ok {
				d.PrepTime = v
			}
		case "totaltime":
			if v, ok := flexInt(raw); ok {
				d.TotalTime = v
			}
		case "imageurl":
			if v, ok := flexString(raw); ok {
				d.ImageURL = v
			}
		}
	}

	// "title" wins over "name" when both are present.
	d.Title = title
	if d.Title == "" {
		d.Title = name
	}
	return nil
}

func decodeIngredients(raw json.RawMessage) []DraftIngredient {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]DraftIngredient, 0, len(entries))
	for _, entry := range entries {
		var ing DraftIngredient
		if err := json.Unmarshal(entry, &ing); err != nil {
			// Some models emit plain strings instead of objects.
			if s, ok := flexString(entry); ok && s != "" {
				ing.Name = s
			} else {
				continue
			}
		}
		out = append(out, ing)
	}
	return out
}

func decodeSteps(raw json.RawMessage) []types.CookingStep {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]types.CookingStep, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			if s, ok := flexString(entry); ok && s != "" {
				out = append(out, types.CookingStep{StepNumber: len(out) + 1, Instruction: s})
			}
			continue
		}
		var step types.CookingStep
		if v, ok := flexInt(fields["stepNumber"]); ok {
			step.StepNumber = v
		}
		if v, ok := flexString(fields["instruction"]); ok {
			step.Instruction = strings.TrimSpace(v)
		}
		if v, ok := flexInt(fields["duration"]); ok {
			step.Duration = v
		}
		if v, ok := flexString(fields["temperature"]); ok {
			step.Temperature = v
		}
		if v, ok := flexString(fields["tips"]); ok {
			step.Tips = v
		}
		out = append(out, step)
	}
	return out
}

// decodeNutrition returns a non-nil record whenever the key was
// present, even if inner fields fail to decode. Partial records are
// not merged with defaults; what decoded is what ships.
func decodeNutrition(raw json.RawMessage) *types.NutritionInfo {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &types.NutritionInfo{}
	}
	n := &types.NutritionInfo{}
	if v, ok := flexNumber(fields["calories"]); ok {
		n.Calories = v
	}
	if v, ok := flexNumber(fields["protein"]); ok {
		n.Protein = v
	}
	if v, ok := flexNumber(fields["carbs"]); ok {
		n.Carbs = v
	}
	if v, ok := flexNumber(fields["fat"]); ok {
		n.Fat = v
	}
	if v, ok := flexNumber(fields["fiber"]); ok {
		n.Fiber = v
	}
	if v, ok := flexNumber(fields["sodium"]); ok {
		n.Sodium = v
	}
	return n
}
