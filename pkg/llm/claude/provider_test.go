package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"the-family-be/pkg/llm"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *ClaudeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewClaudeProvider("test-key", "claude-sonnet-4-20250514")
	p.BaseURL = srv.URL
	return p
}

func TestGenerateConcatenatesTextBlocks(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}

		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.System != "be brief" {
			t.Errorf("system = %q", req.System)
		}
		if req.MaxTokens != llm.DefaultMaxTokens {
			t.Errorf("max_tokens = %d, want %d", req.MaxTokens, llm.DefaultMaxTokens)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "Hello"},
				{"type": "tool_use", "id": "t1"},
				{"type": "text", "text": ", Don."},
			},
		})
	})

	got, err := p.Generate(context.Background(), "be brief", []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "Hello, Don." {
		t.Errorf("content = %q, want only text blocks concatenated", got)
	}
}

func TestGenerateNormalizesAPIError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	})

	_, err := p.Generate(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.StatusCode != http.StatusUnauthorized || provErr.Code != "authentication_error" {
		t.Errorf("error = %+v, want upstream status and code preserved", provErr)
	}
}

func TestGenerateEmptyCompletionIsError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{},
		})
	})

	_, err := p.Generate(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.Code != "empty_response" {
		t.Errorf("code = %q, want empty_response", provErr.Code)
	}
}
