package recipe

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/kerouma/rouma/internal/errors"
)

var (
	// ErrMissingCredential means the provider has no API key configured.
	ErrMissingCredential = errors.New("API key not configured")
	// ErrEmptyResponse means the provider answered with no text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrUnparseableResponse means no recipe could be read from the provider text.
	ErrUnparseableResponse = errors.New("response contained no recognisable recipes")
	// ErrProviderNotRegistered means the order named a provider the registry lacks.
	ErrProviderNotRegistered = errors.New("provider not registered")
	// ErrProvidersExhausted means every provider failed, including the mock.
	ErrProvidersExhausted = errors.New("all AI providers failed")
)

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	// Type is one of rate_limit, credit_exhausted, server_error, client_error,
	// missing_credential, unparseable, timeout or unknown.
	Type     string
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// ClassifyError labels a provider failure for logs and metrics.
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	msg := err.Error()
	classified := func(t string) *ProviderError {
		return &ProviderError{Type: t, Message: msg, Provider: provider}
	}

	switch {
	case errors.Is(err, ErrMissingCredential):
		return classified("missing_credential")
	case errors.Is(err, ErrUnparseableResponse), errors.Is(err, ErrEmptyResponse):
		return classified("unparseable")
	case errors.Is(err, context.DeadlineExceeded):
		return classified("timeout")
	}

	if containsAny(msg, "status 429", "HTTP 429", "429 Too Many Requests", "rate limit", "too many requests") {
		return classified("rate_limit")
	}

	if containsAny(msg, "status 402", "HTTP 402", "insufficient credit", "credit exhausted", "billing", "quota") {
		return classified("credit_exhausted")
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= 500 {
			return classified("server_error")
		}
		if appErr.StatusCode >= 400 {
			return classified("client_error")
		}
	}

	if containsAny(msg, "status 5", "HTTP 5", "server error", "internal error") {
		return classified("server_error")
	}

	if containsAny(msg, "status 4", "HTTP 4", "bad request", "unauthorized", "forbidden") {
		return classified("client_error")
	}

	if containsAny(msg, "timeout", "timed out") {
		return classified("timeout")
	}

	return classified("unknown")
}

// IsQuotaExceeded reports whether a failure message points at a quota or
// rate limit on the provider side.
func IsQuotaExceeded(msg string) bool {
	return containsAny(msg, "quota", "rate limit", "too many requests", "429")
}

func containsAny(s string, substrs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
