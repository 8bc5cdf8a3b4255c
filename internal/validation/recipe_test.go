package validation

import (
	"strings"
	"testing"

	"github.com/AraTman/recipe-parser-api/internal/extract"
)

func TestDetectPlaceholders(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"N/A", true},
		{"unknown", true},
		{"Not Specified", true},
		{"[placeholder]", true},
		{"<TBD>", true},
		{"valid ingredient", false},
		{"Salt", false},
		{"", true},
		{"   ", true},
		{"xxx", true},
	}

	for _, tt := range tests {
		result := DetectPlaceholders(tt.text)
		if result != tt.expected {
			t.Errorf("DetectPlaceholders(%q) = %v; want %v", tt.text, result, tt.expected)
		}
	}
}

func TestValidateRecipe(t *testing.T) {
	config := DefaultRecipeValidationConfig()

	t.Run("High quality recipe", func(t *testing.T) {
		recipe := extract.Recipe{
			Title:         "Havuçlu Kek",
			Difficulty:    extract.DifficultyEasy,
			Servings:      "8 kişilik",
			TotalDuration: "40 dakika",
			Ingredients: []extract.Ingredient{
				{Item: "yumurta", Amount: "3"},
				{Item: "şeker", Amount: "2", Unit: "su bardağı"},
				{Item: "havuç", Amount: "2", Unit: "adet"},
			},
			Steps: []extract.Step{
				{Order: 1, Text: "Yumurta ve şekeri köpürene kadar çırpın."},
				{Order: 2, Text: "Fırında 40 dakika pişirin.", Duration: "40 dakika"},
			},
		}

		result := ValidateRecipe(recipe, config)
		if !result.IsValid {
			t.Errorf("Expected recipe to be valid, got issues: %v", result.Issues)
		}
		if result.QualityScore < 80 {
			t.Errorf("Expected high quality score, got %d", result.QualityScore)
		}
	})

	t.Run("Placeholder detection", func(t *testing.T) {
		recipe := extract.Recipe{
			Title:      "N/A",
			Difficulty: extract.DifficultyMedium,
			Ingredients: []extract.Ingredient{
				{Item: "unknown"},
				{Item: "şeker"},
			},
			Steps: []extract.Step{
				{Order: 1, Text: "Tarifteki adımları takip edin."},
				{Order: 2, Text: "Servis etmeden önce dinlendirin."},
			},
		}

		result := ValidateRecipe(recipe, config)
		if result.IsValid {
			t.Error("Expected recipe with placeholders to be invalid")
		}
		if !result.HasPlaceholders {
			t.Error("Expected HasPlaceholders to be true")
		}
	})

	t.Run("Empty recipe fails", func(t *testing.T) {
		recipe := extract.Recipe{}
		result := ValidateRecipe(recipe, config)
		if result.IsValid {
			t.Error("Expected empty recipe to be invalid")
		}
		if result.QualityScore != 0 {
			t.Errorf("Expected quality score 0, got %d", result.QualityScore)
		}
	})

	t.Run("Minimum requirements not met", func(t *testing.T) {
		recipe := extract.Recipe{
			Title:      "Simple Toast",
			Difficulty: extract.DifficultyEasy,
			Ingredients: []extract.Ingredient{
				{Item: "bread", Amount: "1", Unit: "slice"},
			},
			Steps: []extract.Step{
				{Order: 1, Text: "Toast it."},
			},
		}

		result := ValidateRecipe(recipe, config)
		if result.IsValid {
			t.Error("Expected recipe with too few ingredients/steps to be invalid")
		}
		foundIngredientIssue := false
		foundStepIssue := false
		for _, issue := range result.Issues {
			if strings.Contains(issue, "Too few ingredients") {
				foundIngredientIssue = true
			}
			if strings.Contains(issue, "Too few steps") {
				foundStepIssue = true
			}
		}
		if !foundIngredientIssue {
			t.Error("Expected ingredient count issue")
		}
		if !foundStepIssue {
			t.Error("Expected step count issue")
		}
	})
}
