package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"the-family-be/pkg/llm"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("test-key", "gpt-4o")
	p.BaseURL = srv.URL
	return p
}

func TestGenerateResponsesAPIShape(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("path = %q, want /v1/responses", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{"type": "reasoning", "content": []map[string]interface{}{}},
				{
					"type": "message",
					"content": []map[string]interface{}{
						{"type": "output_text", "text": "The numbers "},
						{"type": "annotation", "text": "ignored"},
						{"type": "output_text", "text": "check out."},
					},
				},
			},
		})
	})

	got, err := p.Generate(context.Background(), "sys", []llm.Message{{Role: "user", Content: "report"}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "The numbers check out." {
		t.Errorf("content = %q, want output_text segments of message items", got)
	}
}

func TestGenerateChatCompletionsFallback(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "from choices"}},
			},
		})
	})

	got, err := p.Generate(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "from choices" {
		t.Errorf("content = %q, want chat-completions fallback", got)
	}
}

func TestGenerateNormalizesAPIError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"type": "invalid_request_error", "code": "model_not_found", "message": "The model does not exist"},
		})
	})

	_, err := p.Generate(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.Code != "model_not_found" {
		t.Errorf("code = %q, want provider code preserved", provErr.Code)
	}
}
