package factory

import (
	"errors"
	"testing"

	"the-family-be/pkg/llm"
)

func TestRegistryKnownProviders(t *testing.T) {
	reg := NewRegistry(Keys{Anthropic: "a", OpenAI: "b", Gemini: "c"})

	for _, name := range []string{"claude", "openai", "gemini"} {
		p, err := reg.Get(name)
		if err != nil {
			t.Errorf("Get(%q) error: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, p.Name())
		}
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg := NewRegistry(Keys{})

	_, err := reg.Get("llama")
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.Code != "unknown_provider" {
		t.Errorf("code = %q, want unknown_provider", provErr.Code)
	}
}
