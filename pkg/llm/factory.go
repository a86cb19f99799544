package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// Providers supported by NewClient.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// NewClient creates a completion client for the configured provider.
// An empty provider defaults to the OpenAI-compatible client, which also
// covers self-hosted endpoints (vLLM, Ollama and the like).
func NewClient(cfg *Config, logger *zap.Logger) (CompletionClient, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(cfg, logger)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
