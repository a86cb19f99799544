// Package llm provides completion backend clients for the translation pipeline.
package llm

import (
	"context"
)

// CompletionClient defines the interface for completion backend calls.
// Use this interface for dependency injection to enable mocking in tests.
//
// Complete sends an ordered system+user message pair and returns the first
// candidate completion text. An empty string with a nil error is a valid
// outcome: the backend produced no usable text, which the caller treats as
// "no answer", not as a failure.
type CompletionClient interface {
	Complete(ctx context.Context, systemMessage, userMessage string) (string, error)

	// Model returns the configured model identifier.
	Model() string
}

// Config holds configuration for creating a completion client.
type Config struct {
	Provider    string  // "openai" or "anthropic"
	Endpoint    string  // Base URL for OpenAI-compatible endpoints
	Model       string  // Model identifier
	APIKey      string  // Backend credential
	Temperature float64 // Sampling temperature in [0,1]
	MaxTokens   int     // Max output tokens per completion
}
