package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerouma/rouma/internal/services/ai"
)

func TestMockRecipesDeterministic(t *testing.T) {
	in := ai.PromptInput{Ingredients: []string{"rice", "beans"}}
	assert.Equal(t, mockRecipes(in), mockRecipes(in))
}

func TestMockRecipesStandard(t *testing.T) {
	recipes := mockRecipes(ai.PromptInput{Ingredients: []string{"rice", "beans"}})
	require.Len(t, recipes, 2)

	for _, r := range recipes {
		assert.Nil(t, r.Nutrition)
		assert.Contains(t, r.Name, "Rice & Beans")
		assert.Equal(t, []string{"rice", "beans"}, r.Ingredients[:2])
		assert.NotEmpty(t, r.Instructions)
		assert.Equal(t, "african", r.Tags[0])
		for _, step := range r.Instructions {
			assert.NotContains(t, step, "{main}")
		}
	}
	assert.NotEqual(t, recipes[0].Origin, recipes[1].Origin)
}

func TestMockRecipesPremium(t *testing.T) {
	recipes := mockRecipes(ai.PromptInput{
		Ingredients: []string{"yam", "egusi", "spinach", "palm oil", "onion", "crayfish"},
		HealthGoals: []string{"iron"},
		Premium:     true,
	})
	require.Len(t, recipes, 3)

	for _, r := range recipes {
		require.NotNil(t, r.Nutrition)
		require.NotNil(t, r.Nutrition.Calories)
		assert.Positive(t, *r.Nutrition.Calories)
		assert.NotContains(t, r.Ingredients, "crayfish")
		assert.Contains(t, r.HealthBenefits, "A good fit for iron")
	}
}

func TestMockRecipesEmptyPantry(t *testing.T) {
	recipes := mockRecipes(ai.PromptInput{})
	require.NotEmpty(t, recipes)
	assert.Contains(t, recipes[0].Ingredients, "seasonal vegetables")
}

func TestMockGenerateRoundTripsThroughParser(t *testing.T) {
	in := ai.PromptInput{Ingredients: []string{"cassava", "fish"}, Premium: true}
	text, err := NewMockProvider().Generate(context.Background(), Prompt{Kind: PromptRecipes, Input: &in})
	require.NoError(t, err)

	want := mockRecipes(in)
	got, labelled := parseRecipes(text, true)
	require.Len(t, got, len(want))
	assert.Equal(t, len(want), labelled)

	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Origin, got[i].Origin)
		assert.Equal(t, want[i].CookingTime, got[i].CookingTime)
		require.NotNil(t, got[i].Nutrition)
		assert.Equal(t, *want[i].Nutrition.Calories, *got[i].Nutrition.Calories)
	}
}

func TestMockChatReply(t *testing.T) {
	p := NewMockProvider()

	a, err := p.Generate(context.Background(), Prompt{Kind: PromptChat, Text: "What is fufu?"})
	require.NoError(t, err)
	b, err := p.Generate(context.Background(), Prompt{Kind: PromptChat, Text: "What is fufu?"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, mockChatReplies, a)
	assert.NoError(t, p.Probe(context.Background()))
}
