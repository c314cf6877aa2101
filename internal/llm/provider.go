package llm

import (
	"context"

	"github.com/ekurganov/claimlens/internal/model"
)

// Provider defines the interface for LLM completion backends. The
// pipeline never depends on a concrete provider identity, only on this
// capability.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a free-text completion
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteJSON generates a completion expected to be a single JSON
	// object. The raw JSON text is returned for the caller to decode.
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RateLimit in requests per second, 0 disables limiting
	RateLimit float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 4096,
		RateLimit: 2,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
		RateLimit: modelConfig.RateLimit,
	}
}
