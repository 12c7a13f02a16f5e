package factory

import (
	"the-family-be/internal/constant"
	"the-family-be/pkg/llm"
	"the-family-be/pkg/llm/claude"
	"the-family-be/pkg/llm/gemini"
	"the-family-be/pkg/llm/openai"
)

// Registry holds the closed set of supported providers. An unknown provider
// id fails fast with a ProviderError, before any network call.
type Registry struct {
	providers map[string]llm.ChatProvider
}

type Keys struct {
	Anthropic string
	OpenAI    string
	Gemini    string
}

func NewRegistry(keys Keys) *Registry {
	return &Registry{
		providers: map[string]llm.ChatProvider{
			constant.ProviderClaude: claude.NewClaudeProvider(keys.Anthropic, ""),
			constant.ProviderOpenAI: openai.NewOpenAIProvider(keys.OpenAI, ""),
			constant.ProviderGemini: gemini.NewGeminiProvider(keys.Gemini, ""),
		},
	}
}

// NewRegistryFromProviders builds a registry over explicit providers. Used
// by tests to substitute fakes.
func NewRegistryFromProviders(providers ...llm.ChatProvider) *Registry {
	m := make(map[string]llm.ChatProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Get(provider string) (llm.ChatProvider, error) {
	p, ok := r.providers[provider]
	if !ok {
		return nil, llm.NewProviderError(provider, "unknown_provider", "unsupported AI provider: "+provider)
	}
	return p, nil
}
