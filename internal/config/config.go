package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	RedisURL string

	OpenAIKey      string
	GeminiKey      string
	HuggingFaceKey string
	CohereKey      string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	RecipeGeneration RecipeGenerationConfig
}

type RecipeGenerationConfig struct {
	DefaultProvider        string        `yaml:"default_provider"`
	ProviderTimeout        time.Duration `yaml:"provider_timeout"`
	CacheTTL               time.Duration `yaml:"cache_ttl"`
	HuggingFacePromptLimit int           `yaml:"huggingface_prompt_limit"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		GeminiKey:                os.Getenv("GEMINI_API_KEY"),
		HuggingFaceKey:           os.Getenv("HUGGINGFACE_API_KEY"),
		CohereKey:                os.Getenv("COHERE_API_KEY"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		RecipeGeneration: RecipeGenerationConfig{
			DefaultProvider: os.Getenv("DEFAULT_AI_PROVIDER"),
		},
	}

	if v := os.Getenv("AI_PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AI_PROVIDER_TIMEOUT: %w", err)
		}
		cfg.RecipeGeneration.ProviderTimeout = d
	}
	if v := os.Getenv("RECIPE_CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RECIPE_CACHE_TTL_SECONDS: %w", err)
		}
		cfg.RecipeGeneration.CacheTTL = time.Duration(secs) * time.Second
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "kerouma-api"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetRecipeGenerationDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromYAML overlays the recipe_generation section of a YAML file.
// Environment values already set take precedence over the file.
func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		RecipeGeneration RecipeGenerationConfig `yaml:"recipe_generation"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	rg := yamlConfig.RecipeGeneration
	if rg.DefaultProvider != "" && c.RecipeGeneration.DefaultProvider == "" {
		c.RecipeGeneration.DefaultProvider = rg.DefaultProvider
	}
	if rg.ProviderTimeout != 0 && c.RecipeGeneration.ProviderTimeout == 0 {
		c.RecipeGeneration.ProviderTimeout = rg.ProviderTimeout
	}
	if rg.CacheTTL != 0 && c.RecipeGeneration.CacheTTL == 0 {
		c.RecipeGeneration.CacheTTL = rg.CacheTTL
	}
	if rg.HuggingFacePromptLimit != 0 && c.RecipeGeneration.HuggingFacePromptLimit == 0 {
		c.RecipeGeneration.HuggingFacePromptLimit = rg.HuggingFacePromptLimit
	}

	return nil
}

func (c *Config) SetRecipeGenerationDefaults() {
	if c.RecipeGeneration.DefaultProvider == "" {
		c.RecipeGeneration.DefaultProvider = "gemini"
	}
	c.RecipeGeneration.DefaultProvider = strings.ToLower(c.RecipeGeneration.DefaultProvider)
	if c.RecipeGeneration.ProviderTimeout == 0 {
		c.RecipeGeneration.ProviderTimeout = 30 * time.Second
	}
	if c.RecipeGeneration.CacheTTL == 0 {
		c.RecipeGeneration.CacheTTL = time.Hour
	}
	if c.RecipeGeneration.HuggingFacePromptLimit == 0 {
		c.RecipeGeneration.HuggingFacePromptLimit = 800
	}
}

// validate rejects settings that cannot work. An unknown default provider is
// allowed: ordering falls back to the canonical sequence.
func (c *Config) validate() error {
	if c.RecipeGeneration.ProviderTimeout < 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if c.RecipeGeneration.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if c.RecipeGeneration.HuggingFacePromptLimit < 0 {
		return fmt.Errorf("huggingface prompt limit must be positive")
	}
	return nil
}
