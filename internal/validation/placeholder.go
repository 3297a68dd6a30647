package validation

import (
	"strings"
)

var placeholderWords = map[string]struct{}{
	"n/a":           {},
	"na":            {},
	"none":          {},
	"unknown":       {},
	"not specified": {},
	"not provided":  {},
	"tbd":           {},
	"todo":          {},
	"placeholder":   {},
	"...":           {},
}

// IsPlaceholder reports whether text carries no real content: blanks,
// filler words, bracketed template slots such as "[Country/region]" echoed
// back by a model, or a single repeated character.
func IsPlaceholder(text string) bool {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return true
	}
	if _, ok := placeholderWords[s]; ok {
		return true
	}
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '[' && last == ']') || (first == '<' && last == '>') || (first == '{' && last == '}') {
			return true
		}
	}
	return len(s) >= 3 && strings.Count(s, s[:1]) == len(s)
}
