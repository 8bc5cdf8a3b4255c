package recipe

import (
	"context"

	"github.com/AraTman/recipe-parser-api/internal/extract"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
)

// Provider defines the interface for AI recipe extraction providers
type Provider interface {
	ExtractRecipe(ctx context.Context, caption, platform, language string) (*extract.Recipe, error)
}
