package recipe

import (
	"context"
	"strings"

	"github.com/kerouma/rouma/internal/services/ai"
)

// ProviderType identifies one text-generation backend.
type ProviderType string

const (
	ProviderOpenAI      ProviderType = "openai"
	ProviderGemini      ProviderType = "gemini"
	ProviderHuggingFace ProviderType = "huggingface"
	ProviderCohere      ProviderType = "cohere"
	ProviderMock        ProviderType = "mock"
)

// ParseProviderType resolves a case-insensitive provider name.
func ParseProviderType(name string) (ProviderType, bool) {
	t := ProviderType(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range DefaultOrder {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// PromptKind tells a provider what the prompt is for, which sets its token budget.
type PromptKind string

const (
	PromptRecipes PromptKind = "recipes"
	PromptChat    PromptKind = "chat"
)

// Prompt is the text handed to a provider for one attempt.
type Prompt struct {
	Kind PromptKind
	Text string
	// Input is set for recipe prompts so local generators can skip the text.
	Input *ai.PromptInput
}

// Provider is one interchangeable text-generation backend.
type Provider interface {
	Name() ProviderType
	Generate(ctx context.Context, prompt Prompt) (string, error)
	// Probe performs a lightweight capability check.
	Probe(ctx context.Context) error
}

// RecipeWriter is implemented by providers that can build recipes directly
// from the request instead of producing text to parse.
type RecipeWriter interface {
	WriteRecipes(ctx context.Context, in ai.PromptInput) ([]Recipe, error)
}

// promptLimiter is implemented by providers that need a shorter prompt.
type promptLimiter interface {
	PromptLimit() int
}

// credentialed is implemented by providers that need an API key.
type credentialed interface {
	HasCredential() bool
}
