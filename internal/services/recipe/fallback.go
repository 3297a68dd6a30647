package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerouma/rouma/internal/logger"
	"github.com/kerouma/rouma/internal/metrics"
)

type attemptFunc[T any] func(ctx context.Context, p Provider) (T, error)

// runChain tries each provider in order and stops at the first success.
// Every attempt runs under its own timeout and is recorded in the tracker.
// It returns ErrProvidersExhausted only if the whole order failed.
func runChain[T any](ctx context.Context, s *Service, order []ProviderType, kind string, attempt attemptFunc[T]) (T, *Outcome, error) {
	startTime := time.Now()
	outcome := &Outcome{
		ProvidersTried: make([]ProviderType, 0, len(order)),
		Failures:       make(map[ProviderType]AttemptFailure),
	}

	for i, pt := range order {
		outcome.ProvidersTried = append(outcome.ProvidersTried, pt)

		result, err := attemptProvider(ctx, s, pt, attempt)
		s.status.Record(pt, err)

		if err == nil {
			outcome.SuccessfulProvider = pt
			outcome.FallbackUsed = i > 0
			outcome.GenerationTime = time.Since(startTime)
			metrics.RecordAttempt(ctx, string(pt), "success")
			if outcome.FallbackUsed {
				slog.Info("Fallback provider succeeded",
					"kind", kind,
					"provider", pt,
					"providers_tried", len(outcome.ProvidersTried),
					logger.WithTraceContext(ctx))
			}
			return result, outcome, nil
		}

		providerErr := ClassifyError(err, string(pt))
		outcome.Failures[pt] = AttemptFailure{
			Error:         err.Error(),
			QuotaExceeded: IsQuotaExceeded(err.Error()),
		}
		metrics.RecordAttempt(ctx, string(pt), providerErr.Type)

		next := ProviderType("")
		if i+1 < len(order) {
			next = order[i+1]
			metrics.RecordFallback(ctx, string(pt), string(next), providerErr.Type)
		}
		slog.Warn("Provider attempt failed",
			"kind", kind,
			"provider", pt,
			"error_type", providerErr.Type,
			"error", err.Error(),
			"next_provider", next,
			logger.WithTraceContext(ctx))
	}

	outcome.GenerationTime = time.Since(startTime)
	var zero T
	return zero, outcome, ErrProvidersExhausted
}

func attemptProvider[T any](ctx context.Context, s *Service, pt ProviderType, attempt attemptFunc[T]) (T, error) {
	var zero T
	p, ok := s.registry.Get(pt)
	if !ok {
		return zero, fmt.Errorf("%s: %w", pt, ErrProviderNotRegistered)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return attempt(attemptCtx, p)
}
