package llm

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
)

// ErrUnknownProvider is returned for a provider name not in Providers().
var ErrUnknownProvider = errors.New("unknown LLM provider")

// Providers lists the accepted provider names.
func Providers() []string {
	return []string{"anthropic", "openai", "gemini", "openrouter", "mock"}
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means no LLM is configured.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with default models and no provider.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// Model returns the configured model of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "mock":
		return "mock"
	}
	return ""
}

// ConfigFromEnv reads CALCTUTOR_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setenv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setenv(&cfg.Provider, "CALCTUTOR_LLM_PROVIDER")

	setenv(&cfg.Anthropic.APIKey, "CALCTUTOR_ANTHROPIC_API_KEY")
	setenv(&cfg.Anthropic.Model, "CALCTUTOR_ANTHROPIC_MODEL")

	setenv(&cfg.OpenAI.APIKey, "CALCTUTOR_OPENAI_API_KEY")
	setenv(&cfg.OpenAI.Model, "CALCTUTOR_OPENAI_MODEL")
	setenv(&cfg.OpenAI.BaseURL, "CALCTUTOR_OPENAI_BASE_URL")

	setenv(&cfg.Gemini.APIKey, "CALCTUTOR_GEMINI_API_KEY")
	setenv(&cfg.Gemini.Model, "CALCTUTOR_GEMINI_MODEL")

	setenv(&cfg.OpenRouter.APIKey, "CALCTUTOR_OPENROUTER_API_KEY")
	setenv(&cfg.OpenRouter.Model, "CALCTUTOR_OPENROUTER_MODEL")
	setenv(&cfg.OpenRouter.BaseURL, "CALCTUTOR_OPENROUTER_BASE_URL")

	return cfg
}

// DiscoverConfig checks the standard API key variables (Gemini, OpenAI,
// Anthropic, OpenRouter, in that order) and selects the first provider
// with a key. It reports false when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// ResolveConfig prefers an explicit CALCTUTOR_LLM_PROVIDER and falls back to
// key discovery. It reports false when no provider is configured at all.
func ResolveConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if cfg.Provider != "" {
		return cfg, true
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider is known and has its key.
func (c Config) Validate() error {
	if !slices.Contains(Providers(), c.Provider) {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "CALCTUTOR_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "CALCTUTOR_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "CALCTUTOR_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "CALCTUTOR_OPENROUTER_API_KEY"
	case "mock":
		return nil
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
