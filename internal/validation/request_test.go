package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kerouma/rouma/internal/errors"
)

func TestNormalizeIngredients(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and drops blanks", []string{"  rice ", "", "   ", "beans"}, []string{"rice", "beans"}},
		{"dedupes case-insensitively", []string{"Cassava", "cassava", "CASSAVA", "okra"}, []string{"Cassava", "okra"}},
		{"collapses inner whitespace", []string{"sweet   potato", "Sweet potato"}, []string{"sweet potato"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIngredients(tt.in))
		})
	}
}

func TestValidateChatMessage(t *testing.T) {
	msg, err := ValidateChatMessage("  How do I make ugali?  ")
	require.NoError(t, err)
	assert.Equal(t, "How do I make ugali?", msg)

	_, err = ValidateChatMessage("   ")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "EMPTY_MESSAGE", appErr.Code())

	_, err = ValidateChatMessage(strings.Repeat("a", MaxChatMessageLength+1))
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "MESSAGE_TOO_LONG", appErr.Code())

	_, err = ValidateChatMessage(strings.Repeat("é", MaxChatMessageLength))
	assert.NoError(t, err)
}

type sampleRequest struct {
	Ingredients []string `validate:"required,min=1,dive,ingredient"`
	Provider    string   `validate:"provider_name"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sampleRequest{Ingredients: []string{"rice", "beans"}, Provider: "gemini"}))

	tests := []struct {
		name     string
		req      sampleRequest
		wantCode string
	}{
		{"missing ingredients", sampleRequest{}, "INVALID_REQUIRED"},
		{"markup in ingredient", sampleRequest{Ingredients: []string{"<script>"}}, "INVALID_INGREDIENT"},
		{"overlong ingredient", sampleRequest{Ingredients: []string{strings.Repeat("x", MaxIngredientLength+1)}}, "INVALID_INGREDIENT"},
		{"bad provider", sampleRequest{Ingredients: []string{"rice"}, Provider: "gpt 4!"}, "INVALID_PROVIDER_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.wantCode, appErr.Code())
		})
	}
}

func TestMustRegisterPanicsOnBadRule(t *testing.T) {
	v := validator.New()

	assert.Panics(t, func() { mustRegister(v, "", validateIngredient) })
	assert.Panics(t, func() { mustRegister(v, "ingredient", nil) })
	assert.NotPanics(t, func() { mustRegister(v, "ingredient", validateIngredient) })
}

func TestNewValidatorRegistersCustomRules(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	type req struct {
		Item     string `validate:"ingredient"`
		Provider string `validate:"provider_name"`
	}
	assert.NoError(t, v.Struct(req{Item: "rice", Provider: "gemini"}))
}
