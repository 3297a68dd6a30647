package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("kerouma/business")

	// Recipe generation metrics
	RecipeGenerationsTotal metric.Int64Counter
	RecipeCacheHitsTotal   metric.Int64Counter
	RecipeCacheMissesTotal metric.Int64Counter

	// Provider metrics
	ProviderAttemptsTotal metric.Int64Counter
	ProviderFallbackTotal metric.Int64Counter
	AIGenerationDuration  metric.Float64Histogram

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

// Init registers every instrument against the global meter provider.
// Until Init runs the package variables are nil, so callers guard on that.
func Init() error {
	var err error

	if RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation requests by outcome"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if RecipeCacheHitsTotal, err = meter.Int64Counter(
		"recipe.cache.hits.total",
		metric.WithDescription("Generation requests served from the recipe cache"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if RecipeCacheMissesTotal, err = meter.Int64Counter(
		"recipe.cache.misses.total",
		metric.WithDescription("Generation requests not found in the recipe cache"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if ProviderAttemptsTotal, err = meter.Int64Counter(
		"provider.attempts.total",
		metric.WithDescription("Total number of provider attempts by provider and result"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of a single provider generation call"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	); err != nil {
		return err
	}

	if ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	); err != nil {
		return err
	}

	if ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	); err != nil {
		return err
	}

	return nil
}
