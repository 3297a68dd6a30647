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
	"unicode/utf8"

	apperrors "github.com/kerouma/rouma/internal/errors"
	"github.com/kerouma/rouma/internal/httpclient"
	"github.com/kerouma/rouma/internal/metrics"
)

const (
	huggingFaceBaseURL = "https://api-inference.huggingface.co/models/"
	huggingFaceModel   = "microsoft/DialoGPT-large"

	// DefaultHuggingFacePromptLimit is the longest prompt sent before
	// switching to the short template.
	DefaultHuggingFacePromptLimit = 800
)

// HuggingFaceProvider calls the Hugging Face inference API.
type HuggingFaceProvider struct {
	apiKey      string
	model       string
	baseURL     string
	promptLimit int
}

// NewHuggingFaceProvider creates a new Hugging Face provider.
// A non-positive promptLimit selects DefaultHuggingFacePromptLimit.
func NewHuggingFaceProvider(apiKey string, promptLimit int) *HuggingFaceProvider {
	if promptLimit <= 0 {
		promptLimit = DefaultHuggingFacePromptLimit
	}
	return &HuggingFaceProvider{
		apiKey:      apiKey,
		model:       huggingFaceModel,
		baseURL:     huggingFaceBaseURL,
		promptLimit: promptLimit,
	}
}

func (p *HuggingFaceProvider) Name() ProviderType { return ProviderHuggingFace }

func (p *HuggingFaceProvider) HasCredential() bool { return p.apiKey != "" }

func (p *HuggingFaceProvider) PromptLimit() int { return p.promptLimit }

type huggingFaceRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens   int     `json:"max_new_tokens"`
		Temperature    float64 `json:"temperature"`
		ReturnFullText bool    `json:"return_full_text"`
	} `json:"parameters"`
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt Prompt) (text string, err error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("Hugging Face %w", ErrMissingCredential)
	}

	startTime := time.Now()
	defer func() { metrics.RecordProviderCall(ctx, string(ProviderHuggingFace), startTime, err) }()

	var req huggingFaceRequest
	req.Inputs = prompt.Text
	req.Parameters.MaxNewTokens = 1500
	if prompt.Kind == PromptChat {
		req.Parameters.MaxNewTokens = 300
	}
	req.Parameters.Temperature = 0.7

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "HuggingFace"), http.MethodPost, p.baseURL+p.model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

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
		return "", apperrors.NewProviderError("huggingface", resp.StatusCode, upstreamError(respBody))
	}

	// The inference API answers with a list for text generation
	// and a single object for some hosted models.
	var generations []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBody, &generations); err != nil {
		var single struct {
			GeneratedText string `json:"generated_text"`
		}
		if err2 := json.Unmarshal(respBody, &single); err2 != nil {
			return "", fmt.Errorf("failed to decode Hugging Face response: %w", err)
		}
		generations = append(generations, single)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("Hugging Face: %w", ErrEmptyResponse)
	}

	text = strings.TrimSpace(generations[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("Hugging Face: %w", ErrEmptyResponse)
	}
	return text, nil
}

// Probe only checks the credential.
func (p *HuggingFaceProvider) Probe(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("Hugging Face %w", ErrMissingCredential)
	}
	return nil
}

// upstreamError keeps the provider's error text short enough for logs and status.
func upstreamError(body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	return fmt.Errorf("%s", truncateRunes(msg, maxUpstreamMessage))
}

const maxUpstreamMessage = 300

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
