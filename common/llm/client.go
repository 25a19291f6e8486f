package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ErrNoTextContent is returned when the provider responds without any text
// block. Callers treat this as a generation failure for the post in question.
var ErrNoTextContent = errors.New("response contains no text content")

// Config holds LLM client configuration.
type Config struct {
	Provider string // "anthropic" or "openai"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string // Model name; provider default when empty
}

// Client is a single-turn completion client. One system prompt, one user
// prompt, one text reply.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// Request contains the prompts and bounds for one completion.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  *float64 // nil = model default, explicit 0 = deterministic
}

// New creates a Client for the configured provider.
// Defaults to Anthropic if no provider is specified.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderAnthropic
	}

	switch provider {
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// Temp is a helper for inline temperature pointers.
func Temp(t float64) *float64 {
	return &t
}
