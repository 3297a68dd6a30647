package recipe

import (
	"time"

	"github.com/kerouma/rouma/internal/services/ai"
)

// UserContext is the optional personalisation signal for a request.
type UserContext = ai.UserPreferences

// GenerationRequest asks for recipes built from pantry ingredients.
type GenerationRequest struct {
	Ingredients       []string
	HealthGoals       []string
	Premium           bool
	PreferredProvider string
	User              *UserContext
}

func (r GenerationRequest) promptInput() ai.PromptInput {
	return ai.PromptInput{
		Ingredients: r.Ingredients,
		HealthGoals: r.HealthGoals,
		Premium:     r.Premium,
		User:        r.User,
	}
}

// Recipe is a structured recipe extracted from provider output.
type Recipe struct {
	Name            string     `json:"name"`
	Origin          string     `json:"origin"`
	Ingredients     []string   `json:"ingredients"`
	Instructions    []string   `json:"instructions"`
	HealthBenefits  string     `json:"health_benefits"`
	CulturalContext string     `json:"cultural_context"`
	CookingTime     string     `json:"cooking_time"`
	Nutrition       *Nutrition `json:"nutrition_info"`
	Tags            []string   `json:"tags"`
}

// Nutrition holds the values found in a premium recipe's nutrition text.
// Each field is absent when its pattern did not match.
type Nutrition struct {
	Calories *int   `json:"calories,omitempty"`
	Protein  string `json:"protein,omitempty"`
	Fiber    string `json:"fiber,omitempty"`
}

// AttemptFailure describes one failed provider attempt.
type AttemptFailure struct {
	Error         string `json:"error"`
	QuotaExceeded bool   `json:"quota_exceeded"`
}

// Outcome is the metadata returned alongside a generation result.
type Outcome struct {
	ProvidersTried     []ProviderType                  `json:"providers_tried"`
	SuccessfulProvider ProviderType                    `json:"successful_provider"`
	FallbackUsed       bool                            `json:"fallback_used"`
	GenerationTime     time.Duration                   `json:"-"`
	Failures           map[ProviderType]AttemptFailure `json:"provider_statuses"`
	Cached             bool                            `json:"cached"`
}

// ChatResult is the answer to a chat prompt.
type ChatResult struct {
	Response       string
	ProviderUsed   ProviderType
	GenerationTime time.Duration
	FallbackUsed   bool
	ProvidersTried []ProviderType
}
