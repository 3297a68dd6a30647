package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kerouma/rouma/internal/errors"
)

func newTestService(opts Options, providers ...Provider) (*Service, *StatusTracker) {
	tracker := NewStatusTracker()
	return NewService(NewRegistry(providers...), tracker, opts), tracker
}

func isPrefix(prefix, order []ProviderType) bool {
	if len(prefix) == 0 || len(prefix) > len(order) {
		return false
	}
	for i := range prefix {
		if prefix[i] != order[i] {
			return false
		}
	}
	return true
}

func TestGenerateRecipesMockOnlyScenario(t *testing.T) {
	svc, tracker := newTestService(Options{DefaultProvider: "gemini"})

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
		Ingredients:       []string{"rice", "beans"},
		PreferredProvider: "mock",
	})
	require.NoError(t, err)

	assert.Equal(t, []ProviderType{ProviderMock}, outcome.ProvidersTried)
	assert.Equal(t, ProviderMock, outcome.SuccessfulProvider)
	assert.False(t, outcome.FallbackUsed)
	assert.Empty(t, outcome.Failures)
	require.NotEmpty(t, recipes)
	for _, r := range recipes {
		assert.Nil(t, r.Nutrition)
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Origin)
		assert.NotEmpty(t, r.Ingredients)
		assert.NotEmpty(t, r.Instructions)
	}

	st, ok := tracker.Get(ProviderMock)
	require.True(t, ok)
	assert.True(t, st.Available)
}

func TestGenerateRecipesWithoutCredentialsReachesMock(t *testing.T) {
	svc, tracker := newTestService(Options{DefaultProvider: "gemini"},
		NewGeminiProvider(""),
		NewOpenAIProvider(""),
		NewHuggingFaceProvider("", 0),
		NewCohereProvider(""),
	)

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
		Ingredients: []string{"cassava", "fish"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, recipes)
	assert.Equal(t, DefaultOrder, outcome.ProvidersTried)
	assert.Equal(t, ProviderMock, outcome.SuccessfulProvider)
	assert.True(t, outcome.FallbackUsed)
	require.Len(t, outcome.Failures, 4)
	assert.Equal(t, "Gemini API key not configured", outcome.Failures[ProviderGemini].Error)
	assert.False(t, outcome.Failures[ProviderGemini].QuotaExceeded)

	reports := tracker.Statuses()
	assert.False(t, reports[ProviderCohere].Available)
	assert.Equal(t, "Cohere API key not configured", *reports[ProviderCohere].Error)
	assert.True(t, reports[ProviderMock].Available)
}

func TestGenerateRecipesPreferredFailsThenFallback(t *testing.T) {
	cohere := &fakeProvider{name: ProviderCohere, err: apperrors.NewProviderError("cohere", 429, errors.New("Too Many Requests"))}
	gemini := &fakeProvider{name: ProviderGemini, text: validRecipeText}

	svc, tracker := newTestService(Options{DefaultProvider: "gemini"}, cohere, gemini)

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
		Ingredients:       []string{"bitter leaves"},
		PreferredProvider: "cohere",
	})
	require.NoError(t, err)

	assert.Equal(t, []ProviderType{ProviderCohere, ProviderGemini}, outcome.ProvidersTried)
	assert.Equal(t, ProviderGemini, outcome.SuccessfulProvider)
	assert.True(t, outcome.FallbackUsed)
	assert.True(t, outcome.Failures[ProviderCohere].QuotaExceeded)
	assert.True(t, isPrefix(outcome.ProvidersTried, ResolveOrder("cohere", "gemini")))

	require.Len(t, recipes, 2)
	assert.Equal(t, "Ndolé", recipes[0].Name)
	assert.Equal(t, "Mandazi", recipes[1].Name)

	st, _ := tracker.Get(ProviderCohere)
	assert.False(t, st.Available)
	assert.Contains(t, st.Error, "429")
}

func TestGenerateRecipesProvidersTriedIsPrefix(t *testing.T) {
	failing := errors.New("connection refused")
	tests := []struct {
		name      string
		preferred string
		providers []Provider
		wantLen   int
	}{
		{"first succeeds", "", []Provider{&fakeProvider{name: ProviderGemini, text: validRecipeText}}, 1},
		{"two fail", "", []Provider{
			&fakeProvider{name: ProviderGemini, err: failing},
			&fakeProvider{name: ProviderOpenAI, err: failing},
			&fakeProvider{name: ProviderHuggingFace, text: validRecipeText},
		}, 3},
		{"preferred succeeds", "huggingface", []Provider{&fakeProvider{name: ProviderHuggingFace, text: validRecipeText}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(Options{DefaultProvider: "gemini"}, tt.providers...)
			recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
				Ingredients:       []string{"maize"},
				PreferredProvider: tt.preferred,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, recipes)
			assert.Len(t, outcome.ProvidersTried, tt.wantLen)
			assert.True(t, isPrefix(outcome.ProvidersTried, ResolveOrder(tt.preferred, "gemini")))
		})
	}
}

func TestGenerateRecipesUnparseableMovesOn(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, text: "I'm sorry, I can only help with recipes."}
	openai := &fakeProvider{name: ProviderOpenAI, text: "   "}

	svc, _ := newTestService(Options{DefaultProvider: "gemini"}, gemini, openai)

	_, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{Ingredients: []string{"yam"}})
	require.NoError(t, err)

	assert.Equal(t, ProviderMock, outcome.SuccessfulProvider)
	assert.Contains(t, outcome.Failures[ProviderGemini].Error, ErrUnparseableResponse.Error())
	assert.Contains(t, outcome.Failures[ProviderOpenAI].Error, ErrUnparseableResponse.Error())
	// huggingface and cohere are not registered in this test
	assert.Contains(t, outcome.Failures[ProviderHuggingFace].Error, "not registered")
}

func TestGenerateRecipesPerAttemptTimeout(t *testing.T) {
	slow := &fakeProvider{name: ProviderGemini, text: validRecipeText, delay: time.Second}
	svc, _ := newTestService(Options{DefaultProvider: "gemini", ProviderTimeout: 20 * time.Millisecond}, slow)

	start := time.Now()
	_, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
		Ingredients: []string{"plantain"},
	})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, ProviderMock, outcome.SuccessfulProvider)
	assert.Contains(t, outcome.Failures[ProviderGemini].Error, "deadline exceeded")
}

func TestGenerateRecipesValidation(t *testing.T) {
	svc, _ := newTestService(Options{})

	for _, ingredients := range [][]string{nil, {}, {"  ", ""}} {
		recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{Ingredients: ingredients})
		assert.Nil(t, recipes)
		assert.Nil(t, outcome)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Equal(t, "MISSING_INGREDIENTS", appErr.Code())
	}
}

func TestGenerateRecipesPromptCarriesRequest(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, text: validRecipeText}
	svc, _ := newTestService(Options{DefaultProvider: "gemini"}, gemini)

	_, _, err := svc.GenerateRecipes(context.Background(), GenerationRequest{
		Ingredients: []string{" okra ", "Okra", "palm oil"},
		HealthGoals: []string{"heart health"},
		Premium:     true,
		User:        &UserContext{SavedRecipeCount: 3},
	})
	require.NoError(t, err)

	p := gemini.lastPrompt()
	assert.Equal(t, PromptRecipes, p.Kind)
	assert.Contains(t, p.Text, "okra, palm oil with focus on heart health.")
	assert.Contains(t, p.Text, "User has previously saved 3 recipes")
	assert.Contains(t, p.Text, "Nutrition Info:")
}

func TestGenerateRecipesExhaustion(t *testing.T) {
	brokenMock := &fakeProvider{name: ProviderMock, err: errors.New("mock broke")}
	svc, _ := newTestService(Options{DefaultProvider: "mock"}, brokenMock)

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{Ingredients: []string{"millet"}})
	assert.Nil(t, recipes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvidersExhausted)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	assert.False(t, appErr.IsOperational)

	require.NotNil(t, outcome)
	assert.Len(t, outcome.ProvidersTried, len(DefaultOrder))
	assert.Empty(t, outcome.SuccessfulProvider)
}

func TestGenerateRecipesCache(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, text: validRecipeText}
	cache := newMemoryCache()
	svc, tracker := newTestService(Options{DefaultProvider: "gemini", Cache: cache, CacheTTL: 10 * time.Minute}, gemini)

	req := GenerationRequest{Ingredients: []string{"Flour", "coconut milk"}}
	first, outcome, err := svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, outcome.Cached)
	assert.Equal(t, 1, cache.len())

	before, _ := tracker.Get(ProviderGemini)

	reordered := GenerationRequest{Ingredients: []string{"coconut milk", "flour"}}
	second, outcome, err := svc.GenerateRecipes(context.Background(), reordered)
	require.NoError(t, err)

	assert.True(t, outcome.Cached)
	assert.Equal(t, ProviderGemini, outcome.SuccessfulProvider)
	assert.Equal(t, []ProviderType{ProviderGemini}, outcome.ProvidersTried)
	assert.False(t, outcome.FallbackUsed)
	assert.True(t, isPrefix(outcome.ProvidersTried, ResolveOrder("", "gemini")))
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), gemini.calls.Load())

	after, _ := tracker.Get(ProviderGemini)
	assert.Equal(t, before.LastChecked, after.LastChecked)

	for _, ttl := range cache.ttls {
		assert.Equal(t, 10*time.Minute, ttl)
	}
}

func TestGenerateRecipesCacheReplaysFallback(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, err: errors.New("service unavailable")}
	openai := &fakeProvider{name: ProviderOpenAI, text: validRecipeText}
	cache := newMemoryCache()
	svc, _ := newTestService(Options{DefaultProvider: "gemini", Cache: cache}, gemini, openai)

	req := GenerationRequest{Ingredients: []string{"plantain"}}
	_, first, err := svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.FallbackUsed)

	_, second, err := svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.True(t, second.FallbackUsed)
	assert.Equal(t, ProviderOpenAI, second.SuccessfulProvider)
	assert.Equal(t, []ProviderType{ProviderGemini, ProviderOpenAI}, second.ProvidersTried)
	assert.Equal(t, int32(1), openai.calls.Load())
}

func TestGenerateRecipesCacheEntryWithoutHistory(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(Options{DefaultProvider: "gemini", Cache: cache})

	req := GenerationRequest{Ingredients: []string{"millet"}}
	cache.put(cacheKey(req), []byte(`{"recipes":[{"name":"Ugali"}],"provider":"cohere"}`))

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, recipes, 1)
	assert.True(t, outcome.Cached)
	assert.Equal(t, []ProviderType{ProviderCohere}, outcome.ProvidersTried)
}

func TestGenerateRecipesEvictsCorruptCacheEntry(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, text: validRecipeText}
	cache := newMemoryCache()
	svc, _ := newTestService(Options{DefaultProvider: "gemini", Cache: cache}, gemini)

	req := GenerationRequest{Ingredients: []string{"sorghum"}}
	key := cacheKey(req)
	cache.put(key, []byte("{not json"))

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, recipes)
	assert.False(t, outcome.Cached)
	assert.Equal(t, []string{key}, cache.deleted)
	assert.Equal(t, int32(1), gemini.calls.Load())

	// The fresh result replaced the bad entry.
	_, outcome, err = svc.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, outcome.Cached)
}

func TestGenerateRecipesDoesNotCacheMock(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(Options{DefaultProvider: "mock", Cache: cache})

	_, _, err := svc.GenerateRecipes(context.Background(), GenerationRequest{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	assert.Zero(t, cache.len())
}

func TestGenerateRecipesCacheErrorsIgnored(t *testing.T) {
	cache := newMemoryCache()
	cache.err = errors.New("redis down")
	gemini := &fakeProvider{name: ProviderGemini, text: validRecipeText}
	svc, _ := newTestService(Options{DefaultProvider: "gemini", Cache: cache}, gemini)

	recipes, outcome, err := svc.GenerateRecipes(context.Background(), GenerationRequest{Ingredients: []string{"rice"}})
	require.NoError(t, err)
	assert.NotEmpty(t, recipes)
	assert.False(t, outcome.Cached)
}

func TestChatFallback(t *testing.T) {
	gemini := &fakeProvider{name: ProviderGemini, err: errors.New("Quota exceeded")}
	openai := &fakeProvider{name: ProviderOpenAI, text: "  Try adding ginger to your stew.  "}
	svc, tracker := newTestService(Options{DefaultProvider: "gemini"}, gemini, openai)

	res, err := svc.Chat(context.Background(), "How do I spice groundnut stew?", "")
	require.NoError(t, err)

	assert.Equal(t, "Try adding ginger to your stew.", res.Response)
	assert.Equal(t, ProviderOpenAI, res.ProviderUsed)
	assert.True(t, res.FallbackUsed)
	assert.Equal(t, []ProviderType{ProviderGemini, ProviderOpenAI}, res.ProvidersTried)
	assert.Equal(t, PromptChat, openai.lastPrompt().Kind)

	st, _ := tracker.Get(ProviderGemini)
	assert.False(t, st.QuotaRemaining)
}

func TestChatMockIsDeterministic(t *testing.T) {
	svc, _ := newTestService(Options{DefaultProvider: "mock"})

	a, err := svc.Chat(context.Background(), "What goes with ugali?", "mock")
	require.NoError(t, err)
	b, err := svc.Chat(context.Background(), "What goes with ugali?", "mock")
	require.NoError(t, err)

	assert.Equal(t, a.Response, b.Response)
	assert.Equal(t, ProviderMock, a.ProviderUsed)
	assert.False(t, a.FallbackUsed)
}

func TestChatEmptyPrompt(t *testing.T) {
	svc, _ := newTestService(Options{})
	_, err := svc.Chat(context.Background(), "  ", "")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "EMPTY_PROMPT", appErr.Code())
}

func TestCheckAllProviders(t *testing.T) {
	svc, _ := newTestService(Options{},
		&fakeProvider{name: ProviderGemini},
		&fakeProvider{name: ProviderOpenAI, probeErr: errors.New("insufficient_quota: check your plan")},
		&fakeProvider{name: ProviderHuggingFace, panics: true},
	)

	reports := svc.CheckAllProviders(context.Background())
	require.Len(t, reports, len(DefaultOrder))

	assert.True(t, reports[ProviderGemini].Available)
	assert.Nil(t, reports[ProviderGemini].Error)
	assert.NotNil(t, reports[ProviderGemini].LastChecked)

	assert.False(t, reports[ProviderOpenAI].Available)
	assert.False(t, reports[ProviderOpenAI].QuotaRemaining)

	assert.False(t, reports[ProviderHuggingFace].Available)
	assert.Contains(t, *reports[ProviderHuggingFace].Error, "panicked")

	assert.False(t, reports[ProviderCohere].Available)
	assert.Contains(t, *reports[ProviderCohere].Error, "not registered")

	assert.True(t, reports[ProviderMock].Available)
	assert.Equal(t, reports, svc.ProviderStatuses())
}

func TestAvailableProviders(t *testing.T) {
	svc, _ := newTestService(Options{},
		NewGeminiProvider("g-key"),
		NewOpenAIProvider(""),
		NewCohereProvider("c-key"),
	)
	assert.Equal(t, []ProviderType{ProviderGemini, ProviderCohere, ProviderMock}, svc.AvailableProviders())

	empty, _ := newTestService(Options{})
	assert.Equal(t, []ProviderType{ProviderMock}, empty.AvailableProviders())
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(GenerationRequest{Ingredients: []string{"Rice", "beans"}, HealthGoals: []string{"energy"}})
	b := cacheKey(GenerationRequest{Ingredients: []string{"beans", "rice"}, HealthGoals: []string{"Energy"}})
	assert.Equal(t, a, b)

	premium := cacheKey(GenerationRequest{Ingredients: []string{"rice", "beans"}, HealthGoals: []string{"energy"}, Premium: true})
	assert.NotEqual(t, a, premium)

	withUser := cacheKey(GenerationRequest{Ingredients: []string{"rice", "beans"}, HealthGoals: []string{"energy"}, User: &UserContext{Pantry: []string{"salt"}}})
	assert.NotEqual(t, a, withUser)
	assert.True(t, strings.Contains(withUser, "pantry=salt"))
}
