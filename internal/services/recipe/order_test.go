package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		def       string
		want      []ProviderType
	}{
		{
			name:      "preferred wins over default",
			preferred: "cohere",
			def:       "openai",
			want:      []ProviderType{ProviderCohere, ProviderGemini, ProviderOpenAI, ProviderHuggingFace, ProviderMock},
		},
		{
			name:      "preferred is case-insensitive",
			preferred: "  HuggingFace ",
			def:       "gemini",
			want:      []ProviderType{ProviderHuggingFace, ProviderGemini, ProviderOpenAI, ProviderCohere, ProviderMock},
		},
		{
			name:      "unknown preferred uses default",
			preferred: "auto",
			def:       "openai",
			want:      []ProviderType{ProviderOpenAI, ProviderGemini, ProviderHuggingFace, ProviderCohere, ProviderMock},
		},
		{
			name: "default already first",
			def:  "gemini",
			want: DefaultOrder,
		},
		{
			name:      "nothing resolves",
			preferred: "claude",
			def:       "llama",
			want:      DefaultOrder,
		},
		{
			name:      "mock explicitly first",
			preferred: "mock",
			def:       "gemini",
			want:      []ProviderType{ProviderMock, ProviderGemini, ProviderOpenAI, ProviderHuggingFace, ProviderCohere},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOrder(tt.preferred, tt.def))
		})
	}
}

func TestResolveOrderInvariants(t *testing.T) {
	inputs := []string{"", "gemini", "openai", "huggingface", "cohere", "mock", "GEMINI", "unknown"}
	for _, preferred := range inputs {
		for _, def := range inputs {
			order := ResolveOrder(preferred, def)

			assert.Len(t, order, len(DefaultOrder))
			seen := map[ProviderType]bool{}
			for _, p := range order {
				assert.False(t, seen[p], "duplicate %s for (%q, %q)", p, preferred, def)
				seen[p] = true
			}
			assert.True(t, seen[ProviderMock])
			if order[0] != ProviderMock {
				assert.Equal(t, ProviderMock, order[len(order)-1])
			}
		}
	}
}

func TestResolveOrderDoesNotAliasDefault(t *testing.T) {
	order := ResolveOrder("", "")
	order[0] = ProviderMock
	assert.Equal(t, ProviderGemini, DefaultOrder[0])
}
