package recipe

import (
	"github.com/AraTman/recipe-parser-api/internal/config"
)

// NewProvider creates a new recipe extraction provider based on the
// configuration. It can optionally wrap the provider in a fallback wrapper if
// enabled.
func NewProvider(cfg config.ExtractionConfig, groqKey, openAIKey string) Provider {
	var primary Provider

	// Determine which provider to use as primary
	switch cfg.Provider {
	case "openai":
		primary = NewOpenAIProvider(openAIKey)
	default:
		// Default to groq
		primary = NewGroqProvider(groqKey)
	}

	// If fallback is enabled, wrap the primary provider
	if cfg.FallbackEnabled {
		var secondary Provider

		// Determine which provider to use as fallback
		switch cfg.FallbackProvider {
		case "openai":
			secondary = NewOpenAIProvider(openAIKey)
		default:
			// Default to groq
			secondary = NewGroqProvider(groqKey)
		}

		return NewFallbackProvider(primary, secondary)
	}

	return primary
}
