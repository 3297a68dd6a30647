package recipe

import (
	"github.com/kerouma/rouma/internal/config"
)

// NewRegistryFromConfig registers every provider. Providers without a key
// are still registered; they fail fast and the chain moves on.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	return NewRegistry(
		NewGeminiProvider(cfg.GeminiKey),
		NewOpenAIProvider(cfg.OpenAIKey),
		NewHuggingFaceProvider(cfg.HuggingFaceKey, cfg.RecipeGeneration.HuggingFacePromptLimit),
		NewCohereProvider(cfg.CohereKey),
		NewMockProvider(),
	)
}

// NewServiceFromConfig wires a Service with the configured defaults.
func NewServiceFromConfig(cfg *config.Config, status *StatusTracker, cache ResultCache) *Service {
	return NewService(NewRegistryFromConfig(cfg), status, Options{
		DefaultProvider: cfg.RecipeGeneration.DefaultProvider,
		ProviderTimeout: cfg.RecipeGeneration.ProviderTimeout,
		CacheTTL:        cfg.RecipeGeneration.CacheTTL,
		Cache:           cache,
	})
}
