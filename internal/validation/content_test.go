package validation

import (
	"context"
	"testing"
)

type mockGroqClient struct {
	chatFunc func(ctx context.Context, model string, messages []ChatMessage, responseFormat string) (string, error)
}

func (m *mockGroqClient) Chat(ctx context.Context, model string, messages []ChatMessage, responseFormat string) (string, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, model, messages, responseFormat)
	}
	return "", nil
}

func TestQuickValidate(t *testing.T) {
	tests := []struct {
		name        string
		caption     string
		wantIsValid bool
		wantConf    Confidence
	}{
		{
			name:        "Empty content",
			caption:     "",
			wantIsValid: false,
			wantConf:    ConfidenceHigh,
		},
		{
			name:        "Short caption",
			caption:     "Too short",
			wantIsValid: false,
			wantConf:    ConfidenceHigh,
		},
		{
			name:        "Sufficient caption with keywords",
			caption:     "To make this cake, you need flour, sugar, and eggs. Bake for 30 minutes.",
			wantIsValid: true,
			wantConf:    ConfidenceHigh,
		},
		{
			name:        "Sufficient Turkish caption with keywords",
			caption:     "Malzemeler: 3 yumurta, 2 su bardağı şeker. Fırında 40 dakika pişirin.",
			wantIsValid: true,
			wantConf:    ConfidenceHigh,
		},
		{
			name:        "Sufficient caption without keywords",
			caption:     "This is a long caption that does not have any of the common things we are searching for in this test case.",
			wantIsValid: true,
			wantConf:    ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickValidate(tt.caption)
			if got.IsValid != tt.wantIsValid {
				t.Errorf("QuickValidate() IsValid = %v, want %v", got.IsValid, tt.wantIsValid)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("QuickValidate() Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestAIValidate(t *testing.T) {
	mock := &mockGroqClient{
		chatFunc: func(ctx context.Context, model string, messages []ChatMessage, responseFormat string) (string, error) {
			return `{"has_recipe": true, "confidence": "high", "reason": "Clear instructions and ingredients", "missing": []}`, nil
		},
	}

	res, err := AIValidate(context.Background(), "Cook this with instructions here", mock, "model")
	if err != nil {
		t.Fatalf("AIValidate failed: %v", err)
	}

	if !res.IsValid {
		t.Errorf("AIValidate() IsValid = %v, want true", res.IsValid)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("AIValidate() Confidence = %v, want high", res.Confidence)
	}
}

func TestValidateContent(t *testing.T) {
	config := ContentValidationConfig{
		EnableAIValidation: true,
		ValidationModel:    "test-model",
	}

	t.Run("Quick pass high confidence", func(t *testing.T) {
		res, err := ValidateContent(context.Background(), "Recipe: Cake. Ingredients: flour, sugar. Bake for 30 mins.", config, nil, "instagram")
		if err != nil {
			t.Fatalf("ValidateContent failed: %v", err)
		}
		if !res.IsValid || res.Confidence != ConfidenceHigh {
			t.Errorf("ValidateContent() expected valid high confidence, got %v (%v)", res.IsValid, res.Confidence)
		}
	})

	t.Run("Quick borderline, AI pass", func(t *testing.T) {
		mock := &mockGroqClient{
			chatFunc: func(ctx context.Context, model string, messages []ChatMessage, responseFormat string) (string, error) {
				return `{"has_recipe": true, "confidence": "high", "reason": "Found recipe", "missing": []}`, nil
			},
		}
		// Sufficient length but no keywords from the list, so the quick pass
		// lands on medium confidence and the AI result wins.
		caption := "This is a very long caption that is just talking about random things but might hide a hidden gem if we look closer."
		res, err := ValidateContent(context.Background(), caption, config, mock, "instagram")
		if err != nil {
			t.Fatalf("ValidateContent failed: %v", err)
		}
		if !res.IsValid || res.Confidence != ConfidenceHigh {
			t.Errorf("ValidateContent() expected AI to return valid high confidence, got %v (%v)", res.IsValid, res.Confidence)
		}
	})
}
