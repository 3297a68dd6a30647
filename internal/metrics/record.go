package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RecordProviderCall records one generation call against a provider.
// It is a no-op for instruments that were never initialised.
func RecordProviderCall(ctx context.Context, provider string, started time.Time, err error) {
	duration := time.Since(started).Seconds()
	result := "success"
	if err != nil {
		result = "failure"
	}
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	withResult := metric.WithAttributes(attribute.String("provider", provider), attribute.String("result", result))

	if AIGenerationDuration != nil {
		AIGenerationDuration.Record(ctx, duration, attrs)
	}
	if ExternalAPIDuration != nil {
		ExternalAPIDuration.Record(ctx, duration, attrs)
	}
	if ExternalAPICallsTotal != nil {
		ExternalAPICallsTotal.Add(ctx, 1, withResult)
	}
}

// RecordAttempt counts one attempt by the fallback chain.
func RecordAttempt(ctx context.Context, provider, result string) {
	if ProviderAttemptsTotal == nil {
		return
	}
	ProviderAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("result", result),
	))
}

// RecordFallback counts a move from one provider to the next.
func RecordFallback(ctx context.Context, from, to, reason string) {
	if ProviderFallbackTotal == nil {
		return
	}
	ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
		attribute.String("reason", reason),
	))
}

// RecordGeneration counts a finished generation request.
func RecordGeneration(ctx context.Context, kind, provider string, ok bool) {
	if RecipeGenerationsTotal == nil {
		return
	}
	status := "success"
	if !ok {
		status = "exhausted"
	}
	RecipeGenerationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
}

// RecordCacheLookup counts a recipe cache hit or miss.
func RecordCacheLookup(ctx context.Context, hit bool) {
	counter := RecipeCacheMissesTotal
	if hit {
		counter = RecipeCacheHitsTotal
	}
	if counter == nil {
		return
	}
	counter.Add(ctx, 1)
}
