package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kerouma/rouma/internal/cache"
	apperrors "github.com/kerouma/rouma/internal/errors"
	"github.com/kerouma/rouma/internal/logger"
	"github.com/kerouma/rouma/internal/metrics"
	"github.com/kerouma/rouma/internal/sentry"
	"github.com/kerouma/rouma/internal/services/ai"
	"github.com/kerouma/rouma/internal/utils"
	"github.com/kerouma/rouma/internal/validation"
)

// DefaultProviderTimeout bounds a single provider attempt.
const DefaultProviderTimeout = 30 * time.Second

var tracer = otel.Tracer("github.com/kerouma/rouma/internal/services/recipe")

// ResultCache stores generation results between requests.
// Get must wrap cache.ErrCorruptEntry when a stored value cannot be decoded.
type ResultCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Options configures a Service.
type Options struct {
	DefaultProvider string
	ProviderTimeout time.Duration
	CacheTTL        time.Duration
	// Cache is optional; nil disables result caching.
	Cache ResultCache
}

// Service orchestrates recipe and chat generation across providers.
type Service struct {
	registry        *Registry
	status          *StatusTracker
	defaultProvider string
	timeout         time.Duration
	cacheTTL        time.Duration
	cache           ResultCache
}

// NewService creates the orchestrator. The status tracker is shared with
// whoever reports provider health, so it is passed in rather than created here.
func NewService(registry *Registry, status *StatusTracker, opts Options) *Service {
	if registry == nil {
		registry = NewRegistry()
	}
	if status == nil {
		status = NewStatusTracker()
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = DefaultProviderTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &Service{
		registry:        registry,
		status:          status,
		defaultProvider: opts.DefaultProvider,
		timeout:         opts.ProviderTimeout,
		cacheTTL:        opts.CacheTTL,
		cache:           opts.Cache,
	}
}

type cachedGeneration struct {
	Recipes        []Recipe       `json:"recipes"`
	Provider       ProviderType   `json:"provider"`
	ProvidersTried []ProviderType `json:"providers_tried"`
	FallbackUsed   bool           `json:"fallback_used"`
}

// outcome replays how the cached result was first produced.
func (c *cachedGeneration) outcome() *Outcome {
	tried := c.ProvidersTried
	if len(tried) == 0 {
		tried = []ProviderType{c.Provider}
	}
	return &Outcome{
		ProvidersTried:     tried,
		SuccessfulProvider: c.Provider,
		FallbackUsed:       c.FallbackUsed,
		Failures:           map[ProviderType]AttemptFailure{},
		Cached:             true,
	}
}

// GenerateRecipes returns recipes for the request and how they were produced.
// Provider failures never surface as errors; only an empty ingredient list
// or an exhausted chain (which the mock generator prevents) do.
func (s *Service) GenerateRecipes(ctx context.Context, req GenerationRequest) ([]Recipe, *Outcome, error) {
	ctx, span := tracer.Start(ctx, "recipe.GenerateRecipes")
	defer span.End()

	req.Ingredients = validation.NormalizeIngredients(req.Ingredients)
	if len(req.Ingredients) == 0 {
		return nil, nil, apperrors.NewValidationError(
			"at least one pantry ingredient is required",
			"MISSING_INGREDIENTS",
			"Add at least one ingredient from your pantry.",
		)
	}
	span.SetAttributes(
		attribute.Int("recipe.ingredients", len(req.Ingredients)),
		attribute.Bool("recipe.premium", req.Premium),
	)

	key := cacheKey(req)
	if cached, ok := s.lookup(ctx, key); ok {
		span.SetAttributes(attribute.Bool("recipe.cached", true))
		return cached.Recipes, cached.outcome(), nil
	}

	input := req.promptInput()
	order := ResolveOrder(req.PreferredProvider, s.defaultProvider)

	recipes, outcome, err := runChain(ctx, s, order, "recipes", func(ctx context.Context, p Provider) ([]Recipe, error) {
		return recipesFrom(ctx, p, input)
	})
	if err != nil {
		return nil, outcome, s.exhausted(ctx, "recipes", outcome, err)
	}

	span.SetAttributes(
		attribute.String("recipe.provider", string(outcome.SuccessfulProvider)),
		attribute.Bool("recipe.fallback_used", outcome.FallbackUsed),
	)
	metrics.RecordGeneration(ctx, "recipes", string(outcome.SuccessfulProvider), true)

	// Mock output is only a stand-in while hosted providers are down.
	if outcome.SuccessfulProvider != ProviderMock {
		s.store(ctx, key, cachedGeneration{
			Recipes:        recipes,
			Provider:       outcome.SuccessfulProvider,
			ProvidersTried: outcome.ProvidersTried,
			FallbackUsed:   outcome.FallbackUsed,
		})
	}

	slog.Info("Recipes generated",
		"provider", outcome.SuccessfulProvider,
		"recipes", len(recipes),
		"fallback_used", outcome.FallbackUsed,
		"duration", outcome.GenerationTime,
		logger.WithTraceContext(ctx))

	return recipes, outcome, nil
}

func recipesFrom(ctx context.Context, p Provider, input ai.PromptInput) ([]Recipe, error) {
	if w, ok := p.(RecipeWriter); ok {
		recipes, err := w.WriteRecipes(ctx, input)
		if err != nil {
			return nil, err
		}
		if len(recipes) == 0 {
			return nil, fmt.Errorf("%s: %w", p.Name(), ErrUnparseableResponse)
		}
		return recipes, nil
	}

	limit := 0
	if l, ok := p.(promptLimiter); ok {
		limit = l.PromptLimit()
	}

	text, err := p.Generate(ctx, Prompt{
		Kind:  PromptRecipes,
		Text:  ai.BuildRecipePrompt(input, limit),
		Input: &input,
	})
	if err != nil {
		return nil, err
	}

	recipes, labelled := parseRecipes(text, input.Premium)
	if len(recipes) == 0 || labelled == 0 {
		return nil, fmt.Errorf("%s: %w", p.Name(), ErrUnparseableResponse)
	}
	return recipes, nil
}

// Chat answers a prompt with the first provider that produces text.
func (s *Service) Chat(ctx context.Context, prompt, preferred string) (*ChatResult, error) {
	ctx, span := tracer.Start(ctx, "recipe.Chat")
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return nil, apperrors.NewValidationError("prompt cannot be empty", "EMPTY_PROMPT", "")
	}

	order := ResolveOrder(preferred, s.defaultProvider)
	text, outcome, err := runChain(ctx, s, order, "chat", func(ctx context.Context, p Provider) (string, error) {
		text, err := p.Generate(ctx, Prompt{Kind: PromptChat, Text: prompt})
		if err != nil {
			return "", err
		}
		if text = strings.TrimSpace(text); text == "" {
			return "", fmt.Errorf("%s: %w", p.Name(), ErrEmptyResponse)
		}
		return text, nil
	})
	if err != nil {
		return nil, s.exhausted(ctx, "chat", outcome, err)
	}

	span.SetAttributes(attribute.String("chat.provider", string(outcome.SuccessfulProvider)))
	metrics.RecordGeneration(ctx, "chat", string(outcome.SuccessfulProvider), true)

	return &ChatResult{
		Response:       text,
		ProviderUsed:   outcome.SuccessfulProvider,
		GenerationTime: outcome.GenerationTime,
		FallbackUsed:   outcome.FallbackUsed,
		ProvidersTried: outcome.ProvidersTried,
	}, nil
}

// exhausted handles a chain where even the mock generator failed.
func (s *Service) exhausted(ctx context.Context, kind string, outcome *Outcome, err error) error {
	slog.Error("All AI providers failed, including the built-in generator",
		"kind", kind,
		"providers_tried", outcome.ProvidersTried,
		"failures", len(outcome.Failures),
		logger.WithTraceContext(ctx))
	sentry.CaptureInvariantViolation(ctx, kind+" fallback chain exhausted", err)
	metrics.RecordGeneration(ctx, kind, "", false)

	return apperrors.NewInternalError("all AI providers failed", "PROVIDERS_EXHAUSTED", err)
}

// ProviderStatuses reports the last known status of every provider.
func (s *Service) ProviderStatuses() map[ProviderType]StatusReport {
	return s.status.Statuses()
}

// CheckAllProviders probes every provider concurrently, records each result
// and returns the refreshed statuses. A failing or panicking probe only
// affects its own provider.
func (s *Service) CheckAllProviders(ctx context.Context) map[ProviderType]StatusReport {
	ctx, span := tracer.Start(ctx, "recipe.CheckAllProviders")
	defer span.End()

	funcs := make([]utils.ParallelFunc, len(DefaultOrder))
	for i, pt := range DefaultOrder {
		funcs[i] = func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s probe panicked: %v", pt, r)
				}
			}()

			p, ok := s.registry.Get(pt)
			if !ok {
				return fmt.Errorf("%s: %w", pt, ErrProviderNotRegistered)
			}
			probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			return p.Probe(probeCtx)
		}
	}

	errs := utils.RunParallel(ctx, funcs)
	for i, pt := range DefaultOrder {
		s.status.Record(pt, errs[i])
		if errs[i] != nil {
			slog.Warn("Provider probe failed", "provider", pt, "error", errs[i].Error())
		}
	}

	return s.status.Statuses()
}

// AvailableProviders lists providers with a configured credential, ending with mock.
func (s *Service) AvailableProviders() []ProviderType {
	return s.registry.Available()
}

func (s *Service) lookup(ctx context.Context, key string) (*cachedGeneration, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached cachedGeneration
	hit, err := s.cache.Get(ctx, key, &cached)
	corrupt := errors.Is(err, cache.ErrCorruptEntry) || (hit && len(cached.Recipes) == 0)
	if err != nil {
		slog.Warn("Recipe cache lookup failed", "error", err)
		hit = false
	}
	if corrupt {
		hit = false
		if err := s.cache.Delete(ctx, key); err != nil {
			slog.Warn("Recipe cache eviction failed", "error", err)
		}
	}
	metrics.RecordCacheLookup(ctx, hit)
	if !hit {
		return nil, false
	}
	return &cached, true
}

func (s *Service) store(ctx context.Context, key string, value cachedGeneration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		slog.Warn("Recipe cache store failed", "error", err)
	}
}

// cacheKey is stable under ingredient order and case.
func cacheKey(req GenerationRequest) string {
	norm := func(in []string) string {
		out := make([]string, len(in))
		for i, v := range in {
			out[i] = strings.ToLower(strings.TrimSpace(v))
		}
		sort.Strings(out)
		return strings.Join(out, ",")
	}

	parts := []string{
		"ingredients=" + norm(req.Ingredients),
		"goals=" + norm(req.HealthGoals),
		"premium=" + strconv.FormatBool(req.Premium),
		"preferred=" + strings.ToLower(strings.TrimSpace(req.PreferredProvider)),
	}
	if u := req.User; u != nil {
		parts = append(parts,
			"saved="+strconv.Itoa(u.SavedRecipeCount),
			"user_goals="+norm(u.HealthGoals),
			"pantry="+norm(u.Pantry),
		)
	}
	return strings.Join(parts, "|")
}
