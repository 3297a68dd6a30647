package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kerouma/rouma/internal/httpclient"
	"github.com/kerouma/rouma/internal/metrics"
)

const openAIModel = "gpt-4o-mini"

// OpenAIProvider generates text with the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey string
	model  string
	opts   []option.RequestOption
}

// NewOpenAIProvider creates a new OpenAI provider. An empty key is allowed;
// every call then fails with ErrMissingCredential.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey, model: openAIModel, opts: opts}
}

func (p *OpenAIProvider) Name() ProviderType { return ProviderOpenAI }

func (p *OpenAIProvider) HasCredential() bool { return p.apiKey != "" }

func (p *OpenAIProvider) client() openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(p.apiKey),
		option.WithHTTPClient(httpclient.InstrumentedClient),
		// The fallback chain is the retry policy.
		option.WithMaxRetries(0),
	}
	return openai.NewClient(append(opts, p.opts...)...)
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt Prompt) (text string, err error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("OpenAI %w", ErrMissingCredential)
	}

	startTime := time.Now()
	defer func() { metrics.RecordProviderCall(ctx, string(ProviderOpenAI), startTime, err) }()

	maxTokens := int64(2000)
	if prompt.Kind == PromptChat {
		maxTokens = 500
	}

	c := p.client()
	resp, err := c.Chat.Completions.New(httpclient.WithProvider(ctx, "OpenAI"), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt.Text),
		},
		MaxCompletionTokens: openai.Int(maxTokens),
		Temperature:         openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices: %w", ErrEmptyResponse)
	}

	text = strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrEmptyResponse)
	}
	return text, nil
}

// Probe lists models, which checks both the key and reachability.
func (p *OpenAIProvider) Probe(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI %w", ErrMissingCredential)
	}
	c := p.client()
	if _, err := c.Models.List(httpclient.WithProvider(ctx, "OpenAI")); err != nil {
		return fmt.Errorf("OpenAI API error: %w", err)
	}
	return nil
}
