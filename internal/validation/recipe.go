package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AraTman/recipe-parser-api/internal/extract"
)

// RecipeValidationConfig defines quality thresholds for extracted recipes.
type RecipeValidationConfig struct {
	MinIngredients  int
	MinSteps        int
	MinQualityScore int
}

// DefaultRecipeValidationConfig returns the thresholds used in production.
func DefaultRecipeValidationConfig() RecipeValidationConfig {
	return RecipeValidationConfig{
		MinIngredients:  2,
		MinSteps:        2,
		MinQualityScore: 50,
	}
}

// RecipeValidationResult contains the outcome of recipe quality validation.
type RecipeValidationResult struct {
	IsValid         bool     `json:"is_valid"`
	QualityScore    int      `json:"quality_score"`
	Issues          []string `json:"issues"`
	HasPlaceholders bool     `json:"has_placeholders"`
}

var placeholderValues = []string{
	"n/a", "na", "unknown", "not specified", "tbd", "todo", "xxx", "none", "null",
}

// DetectPlaceholders reports whether a text field holds a placeholder instead
// of real content.
func DetectPlaceholders(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "[") || strings.HasPrefix(lower, "<") {
		return true
	}
	for _, p := range placeholderValues {
		if lower == p {
			return true
		}
	}
	return false
}

// ValidateRecipe scores an extracted recipe and decides whether it is good
// enough to serve. The score is used to pick a winner when both the heuristic
// engine and an AI provider produce a result.
func ValidateRecipe(r extract.Recipe, cfg RecipeValidationConfig) RecipeValidationResult {
	result := RecipeValidationResult{Issues: []string{}}
	score := 0

	if DetectPlaceholders(r.Title) {
		result.HasPlaceholders = true
		result.Issues = append(result.Issues, "Title is missing or a placeholder")
	} else {
		score += 20
	}

	if len(r.Ingredients) < cfg.MinIngredients {
		result.Issues = append(result.Issues, fmt.Sprintf("Too few ingredients: %d (minimum %d)", len(r.Ingredients), cfg.MinIngredients))
	} else {
		score += 15
	}

	cleanItems := len(r.Ingredients) > 0
	for _, ing := range r.Ingredients {
		if DetectPlaceholders(ing.Item) {
			result.HasPlaceholders = true
			result.Issues = append(result.Issues, fmt.Sprintf("Ingredient %q is a placeholder", ing.Item))
			cleanItems = false
		}
	}
	if cleanItems {
		score += 10
	}

	if len(r.Steps) < cfg.MinSteps {
		result.Issues = append(result.Issues, fmt.Sprintf("Too few steps: %d (minimum %d)", len(r.Steps), cfg.MinSteps))
	} else {
		score += 15
	}

	substantialSteps := len(r.Steps) > 0
	for _, step := range r.Steps {
		if utf8.RuneCountInString(step.Text) < 15 {
			substantialSteps = false
		}
	}
	if substantialSteps {
		score += 10
	}

	if strings.TrimSpace(r.Servings) != "" {
		score += 10
	}
	if strings.TrimSpace(r.TotalDuration) != "" {
		score += 10
	}
	switch r.Difficulty {
	case extract.DifficultyEasy, extract.DifficultyMedium, extract.DifficultyHard:
		score += 10
	default:
		result.Issues = append(result.Issues, fmt.Sprintf("Difficulty %q is not on the Easy/Medium/Hard scale", r.Difficulty))
	}

	result.QualityScore = score
	result.IsValid = !result.HasPlaceholders &&
		len(r.Ingredients) >= cfg.MinIngredients &&
		len(r.Steps) >= cfg.MinSteps &&
		score >= cfg.MinQualityScore

	return result
}
