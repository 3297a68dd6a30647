package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/kerouma/rouma/internal/errors"
	"github.com/kerouma/rouma/internal/httpclient"
	"github.com/kerouma/rouma/internal/metrics"
)

const (
	cohereURL   = "https://api.cohere.ai/v1/generate"
	cohereModel = "command"
)

// CohereProvider calls the Cohere generate API.
type CohereProvider struct {
	apiKey string
	model  string
	url    string
}

// NewCohereProvider creates a new Cohere provider
func NewCohereProvider(apiKey string) *CohereProvider {
	return &CohereProvider{apiKey: apiKey, model: cohereModel, url: cohereURL}
}

func (p *CohereProvider) Name() ProviderType { return ProviderCohere }

func (p *CohereProvider) HasCredential() bool { return p.apiKey != "" }

func (p *CohereProvider) Generate(ctx context.Context, prompt Prompt) (text string, err error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("Cohere %w", ErrMissingCredential)
	}

	startTime := time.Now()
	defer func() { metrics.RecordProviderCall(ctx, string(ProviderCohere), startTime, err) }()

	type generateRequest struct {
		Model       string  `json:"model"`
		Prompt      string  `json:"prompt"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
	}

	req := generateRequest{
		Model:       p.model,
		Prompt:      prompt.Text,
		MaxTokens:   1500,
		Temperature: 0.7,
	}
	if prompt.Kind == PromptChat {
		req.MaxTokens = 300
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Cohere"), http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", apperrors.NewProviderError("cohere", resp.StatusCode, upstreamError(respBody))
	}

	var genResp struct {
		Generations []struct {
			Text string `json:"text"`
		} `json:"generations"`
	}
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode Cohere response: %w", err)
	}
	if len(genResp.Generations) == 0 {
		return "", fmt.Errorf("no response from Cohere: %w", ErrEmptyResponse)
	}

	text = strings.TrimSpace(genResp.Generations[0].Text)
	if text == "" {
		return "", fmt.Errorf("Cohere: %w", ErrEmptyResponse)
	}
	return text, nil
}

// Probe only checks the credential.
func (p *CohereProvider) Probe(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("Cohere %w", ErrMissingCredential)
	}
	return nil
}
