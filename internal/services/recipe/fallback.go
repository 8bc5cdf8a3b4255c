package recipe

import (
	"context"
	"log/slog"

	"github.com/AraTman/recipe-parser-api/internal/errors"
	"github.com/AraTman/recipe-parser-api/internal/extract"
	"github.com/AraTman/recipe-parser-api/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackProvider implements Provider with fallback logic
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

// NewFallbackProvider creates a new fallback provider
func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
	}
}

// ExtractRecipe tries the primary provider first, falls back to secondary on retryable errors
func (f *FallbackProvider) ExtractRecipe(ctx context.Context, caption, platform, language string) (*extract.Recipe, error) {
	// Try primary provider first
	result, err := f.primary.ExtractRecipe(ctx, caption, platform, language)

	if err == nil {
		// Primary succeeded, return result
		return result, nil
	}

	// Classify the error
	providerErr := ClassifyError(err, "primary")

	// Check if error is retryable
	if IsRetryableError(err) {
		slog.Info("Primary provider failed with retryable error, attempting fallback",
			"error_type", providerErr.Type,
			"error", err.Error(),
			"platform", platform)

		// Record fallback metric
		metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from_provider", providerErr.Provider),
			attribute.String("to_provider", "secondary"),
			attribute.String("reason", providerErr.Type),
		))

		// Try secondary provider
		result, fallbackErr := f.secondary.ExtractRecipe(ctx, caption, platform, language)
		if fallbackErr == nil {
			slog.Info("Fallback provider succeeded",
				"primary_error_type", providerErr.Type,
				"platform", platform)
			return result, nil
		}

		// Both failed
		fallbackProviderErr := ClassifyError(fallbackErr, "secondary")
		slog.Error("Both primary and secondary providers failed",
			"primary_error_type", providerErr.Type,
			"primary_error", err.Error(),
			"fallback_error_type", fallbackProviderErr.Type,
			"fallback_error", fallbackErr.Error(),
			"platform", platform)

		return nil, errors.NewExtractionError(
			"both primary and secondary providers failed",
			"PROVIDER_FALLBACK_FAILED",
			err,
		)
	}

	// Not a retryable error (e.g., 4xx), return original error
	slog.Info("Primary provider failed with non-retryable error, not attempting fallback",
		"error_type", providerErr.Type,
		"error", err.Error(),
		"platform", platform)

	return nil, err
}
