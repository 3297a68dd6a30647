package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/kerouma/rouma/internal/httpclient"
	"github.com/kerouma/rouma/internal/metrics"
)

const geminiModel = "gemini-1.5-flash"

// GeminiProvider generates text with the Google Gemini API.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider. The SDK client is built on first use.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: geminiModel}
}

func (p *GeminiProvider) Name() ProviderType { return ProviderGemini }

func (p *GeminiProvider) HasCredential() bool { return p.apiKey != "" }

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("Gemini %w", ErrMissingCredential)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     p.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.InstrumentedClient,
	}
	if p.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt Prompt) (text string, err error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	startTime := time.Now()
	defer func() { metrics.RecordProviderCall(ctx, string(ProviderGemini), startTime, err) }()

	maxTokens := int32(2000)
	if prompt.Kind == PromptChat {
		maxTokens = 500
	}

	resp, err := client.Models.GenerateContent(httpclient.WithProvider(ctx, "Gemini"), p.model, genai.Text(prompt.Text), &genai.GenerateContentConfig{
		MaxOutputTokens: maxTokens,
		Temperature:     genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini returned no candidates: %w", ErrEmptyResponse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text = strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("Gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}

// Probe only checks that a client can be constructed.
func (p *GeminiProvider) Probe(ctx context.Context) error {
	_, err := p.getClient(ctx)
	return err
}
