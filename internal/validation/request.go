package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/kerouma/rouma/internal/errors"
)

const (
	// MaxChatMessageLength is the longest chat message accepted, in characters.
	MaxChatMessageLength = 2000
	// MaxIngredientLength bounds a single pantry entry.
	MaxIngredientLength = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "ingredient", validateIngredient)
	mustRegister(v, "provider_name", validateProviderName)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct checks v against its `validate` tags and converts the first
// failure into a validation AppError naming the offending field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("invalid request", "INVALID_REQUEST", "Check the request body.")
	}

	fe := fieldErrs[0]
	return apperrors.NewValidationError(
		fmt.Sprintf("field %s failed %s validation", fe.Namespace(), fe.Tag()),
		"INVALID_"+strings.ToUpper(fe.Tag()),
		"Check the request body.",
	)
}

// NormalizeIngredients trims each entry, drops blanks and removes
// case-insensitive duplicates. The first spelling and order win.
func NormalizeIngredients(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		item := strings.Join(strings.Fields(raw), " ")
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ValidateChatMessage returns the trimmed message or a validation error.
func ValidateChatMessage(msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", apperrors.NewValidationError("message cannot be empty", "EMPTY_MESSAGE", "Type a question for the kitchen assistant.")
	}
	if utf8.RuneCountInString(msg) > MaxChatMessageLength {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("message exceeds %d characters", MaxChatMessageLength),
			"MESSAGE_TOO_LONG",
			"Shorten the message and try again.",
		)
	}
	return msg, nil
}

func validateIngredient(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" || utf8.RuneCountInString(s) > MaxIngredientLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == '<' || r == '>' {
			return false
		}
	}
	return true
}

func validateProviderName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '-' && r != '_' {
			return false
		}
	}
	return len(s) <= 32
}
