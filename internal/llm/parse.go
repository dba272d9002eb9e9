package llm

import (
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/kondate-ai/backend/internal/types"
)

// Parse turns whatever the model returned into a draft ready for
// sanitization. It never fails: the cascade tries a fenced JSON block,
// the whole trimmed text, the first-to-last brace substring, a
// line-oriented label scan, and finally a fixed default draft.
func Parse(raw string) *RecipeDraft {
	// 1. Fenced ```json block.
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if d, ok := tryUnmarshal(m[1]); ok {
			return d
		}
	}

	// 2. Whole response is a JSON object.
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if d, ok := tryUnmarshal(trimmed); ok {
			return d
		}
	}

	// 3. First opening to last closing brace.
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		if d, ok := tryUnmarshal(trimmed[start : end+1]); ok {
			return d
		}
	}

	log.Printf("[Parser] could not extract JSON from model response, falling back to text extraction")
	return extractFromText(raw)
}

var (
	fencedJSON     = regexp.MustCompile("```json\\s*\\n([\\s\\S]*?)\\n\\s*```")
	controlChars   = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
	trailingCommas = regexp.MustCompile(`,(\s*[}\]])`)
	doubledCommas  = regexp.MustCompile(`([}\]]),(\s*[}\]])`)
)

// cleanJSON applies the normalization used before every structural
// parse attempt: control characters out, trailing commas out, commas
// between adjacent closing delimiters out.
func cleanJSON(s string) string {
	s = controlChars.ReplaceAllString(s, "")
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = doubledCommas.ReplaceAllString(s, "$1$2")
	return strings.TrimSpace(s)
}

// tryUnmarshal parses one structural candidate, repairing the JSON
// once when the first attempt fails with a syntax error.
func tryUnmarshal(candidate string) (*RecipeDraft, bool) {
	cleaned := cleanJSON(candidate)

	var d RecipeDraft
	if err := json.Unmarshal([]byte(cleaned), &d); err == nil {
		return &d, true
	}

	fixed, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return nil, false
	}
	d = RecipeDraft{}
	if err := json.Unmarshal([]byte(fixed), &d); err != nil {
		return nil, false
	}
	return &d, true
}

var (
	titleLine = regexp.MustCompile(`(?i)(?:title|name)\s*[:：]\s*(.+)`)
	descLine  = regexp.MustCompile(`(?i)description\s*[:：]\s*(.+)`)
	timeLine  = regexp.MustCompile(`(?i)(?:cookingtime|cooking time|time)\s*[:：][^0-9]*(\d+)`)
)

func labelValue(m []string) string {
	return strings.Trim(strings.TrimSpace(m[1]), `"' ,`)
}

// extractFromText scans the response line by line for recognizable
// field labels. The result is deliberately sparse: ingredients, steps
// and tips stay empty so later sanitization can fill them, and only
// fields the scan could not recover are defaulted. When no label at
// all matches, the fixed floor draft is returned instead.
func extractFromText(text string) *RecipeDraft {
	d := &RecipeDraft{
		CookingTime:     30,
		MainIngredients: []string{},
		Features:        []string{},
		Ingredients:     []DraftIngredient{},
		Steps:           []types.CookingStep{},
		Nutrition:       &types.NutritionInfo{Calories: 300, Protein: 15, Carbs: 30, Fat: 10, Fiber: 5, Sodium: 800},
		Tips:            []string{},
		Servings:        4,
		PrepTime:        15,
		TotalTime:       45,
	}

	matched := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := titleLine.FindStringSubmatch(line); m != nil && d.Title == "" {
			d.Title = labelValue(m)
			matched = true
		}
		if m := descLine.FindStringSubmatch(line); m != nil && d.Description == "" {
			d.Description = labelValue(m)
			matched = true
		}
		if m := timeLine.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				d.CookingTime = v
				matched = true
			}
		}
	}

	if !matched {
		return defaultDraft()
	}
	if d.Title == "" {
		d.Title = defaultTitle
	}
	if d.Description == "" {
		d.Description = defaultDescription
	}
	if len(d.MainIngredients) == 0 {
		d.MainIngredients = []string{"main ingredient 1", "main ingredient 2", "main ingredient 3"}
	}
	if len(d.Features) == 0 {
		d.Features = []string{"easy to make", "nutritious", "delicious"}
	}
	return d
}

const (
	defaultTitle       = "AI Generated Recipe"
	defaultDescription = "A delicious dish suggested by AI."
)

// defaultDraft is the fixed, fully-populated floor of the cascade,
// used when nothing at all could be recovered from the response.
func defaultDraft() *RecipeDraft {
	return &RecipeDraft{
		Title:           defaultTitle,
		Description:     defaultDescription,
		CookingTime:     30,
		MainIngredients: []string{"main ingredient 1", "main ingredient 2", "main ingredient 3"},
		Features:        []string{"easy to make", "nutritious", "delicious"},
		Ingredients: []DraftIngredient{
			{Name: "basic ingredients", Amount: "to taste", Unit: "to taste", Notes: "adjust to your liking"},
		},
		Steps: []types.CookingStep{
			{StepNumber: 1, Instruction: "Prepare the ingredients.", Duration: 5},
			{StepNumber: 2, Instruction: "Start cooking.", Duration: 25},
		},
		Nutrition: &types.NutritionInfo{Calories: 300, Protein: 15, Carbs: 30, Fat: 10, Fiber: 5, Sodium: 800},
		Tips:      []string{"Adjust the seasoning to your taste."},
		Servings:  4,
		PrepTime:  10,
		TotalTime: 30,
	}
}
