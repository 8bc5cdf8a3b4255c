package recipe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AraTman/recipe-parser-api/internal/extract"
)

// decodeModelRecipe parses the JSON a model returned into a Recipe and
// repairs the fields models get wrong most often. Difficulty is forced onto
// the three-value scale and step orders are renumbered sequentially.
func decodeModelRecipe(content string) (*extract.Recipe, error) {
	var r extract.Recipe
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	r.Difficulty = normalizeDifficulty(string(r.Difficulty))

	if r.Ingredients == nil {
		r.Ingredients = []extract.Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []extract.Step{}
	}
	for i := range r.Steps {
		r.Steps[i].Order = i + 1
	}
	if len(r.Hashtags) == 0 {
		r.Hashtags = nil
	}

	return &r, nil
}

func normalizeDifficulty(raw string) extract.Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return extract.DifficultyEasy
	case "hard":
		return extract.DifficultyHard
	default:
		return extract.DifficultyMedium
	}
}
