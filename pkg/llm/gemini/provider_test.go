package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"the-family-be/pkg/llm"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGeminiProvider("test-key", "gemini-2.0-flash")
	p.BaseURL = srv.URL
	return p
}

func TestGenerateRoleMappingAndExtraction(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Errorf("path = %q, want generateContent for the model", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing key query param")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 2 {
			t.Fatalf("got %d contents, want 2", len(req.Contents))
		}
		if req.Contents[0].Role != "user" || req.Contents[1].Role != "model" {
			t.Errorf("roles = %q,%q, want assistant mapped to model", req.Contents[0].Role, req.Contents[1].Role)
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "sys" {
			t.Errorf("systemInstruction not carried")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "all "}, {"text": "good"}},
				}},
			},
		})
	})

	got, err := p.Generate(context.Background(), "sys", []llm.Message{
		{Role: "user", Content: "status?"},
		{Role: "assistant", Content: "thinking"},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "all good" {
		t.Errorf("content = %q, want parts concatenated", got)
	}
}

func TestGenerateNoCandidatesIsError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
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
