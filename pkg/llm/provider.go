package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Option allows for optional parameters like MaxTokens or a model override.
type Option func(*Options)

type Options struct {
	MaxTokens int
	Model     string // Override default model
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// DefaultMaxTokens is used when no override is given.
const DefaultMaxTokens = 4096

// ChatProvider defines the contract for any AI provider backend. Callers
// never see provider-specific request or response shapes; every failure is
// a *ProviderError.
type ChatProvider interface {
	// Name returns the provider id ("claude", "openai", "gemini").
	Name() string

	// Generate sends a system prompt plus role-tagged history to the model
	// and returns the plain-text completion.
	Generate(ctx context.Context, system string, history []Message, options ...Option) (string, error)
}

// ProviderError is the single normalized failure type for all providers.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
}

// NewProviderError builds a ProviderError for transport or shape failures
// that carry no upstream status code.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{Provider: provider, Code: code, Message: message}
}
