package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var meter = otel.Meter("recipeparser/business")

// Instruments are created at package load from the global meter, which is a
// no-op until a meter provider is installed. They are always safe to record
// on, even when telemetry is disabled.
var (
	// Parse metrics
	RecipeParsesTotal = int64Counter(
		"recipe.parses.total",
		"Total number of recipe parse requests",
	)
	RecipeParseDuration = float64Histogram(
		"recipe.parse.duration",
		"Duration of the full recipe parse pipeline",
		0.1, 0.5, 1, 2, 5, 10, 30, 60,
	)

	// Extraction metrics
	ExtractionDuration = float64Histogram(
		"extraction.duration",
		"Duration of caption-to-recipe extraction",
		0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30,
	)

	// External API metrics
	ExternalAPICallsTotal = int64Counter(
		"external.api.calls.total",
		"Total number of external API calls",
	)
	ExternalAPIDuration = float64Histogram(
		"external.api.duration",
		"Duration of external API calls",
		0.1, 0.5, 1, 2, 5, 10, 30,
	)

	// Cache metrics
	CacheHitsTotal = int64Counter(
		"cache.hits.total",
		"Total number of cache hits",
	)
	CacheMissesTotal = int64Counter(
		"cache.misses.total",
		"Total number of cache misses",
	)

	// Provider fallback metrics
	ProviderFallbackTotal = int64Counter(
		"provider.fallback.total",
		"Total number of provider fallback events",
	)
)

func int64Counter(name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit("1"),
	)
	if err != nil {
		otel.Handle(err)
		return noop.Int64Counter{}
	}
	return c
}

func float64Histogram(name, description string, buckets ...float64) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil {
		otel.Handle(err)
		return noop.Float64Histogram{}
	}
	return h
}
