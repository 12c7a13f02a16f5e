package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"the-family-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.ChatProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		BaseURL:   defaultBaseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

// --- Request/Response structs (Internal to this package) ---

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (p *GeminiProvider) Generate(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{MaxTokens: llm.DefaultMaxTokens}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	// Gemini uses "model" where the abstract contract says "assistant".
	contents := make([]geminiContent, len(history))
	for i, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		contents[i] = geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		}
	}

	body := geminiRequest{
		Contents:         contents,
		GenerationConfig: geminiGenConfig{MaxOutputTokens: options.MaxTokens},
	}
	if system != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "marshal_error", err.Error())
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", p.BaseURL, model, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "request_error", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "transport_error", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "read_error", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", p.apiError(resp.StatusCode, respBody)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", llm.NewProviderError(p.Name(), "parse_error", err.Error())
	}

	if len(parsed.Candidates) == 0 {
		return "", llm.NewProviderError(p.Name(), "empty_response", "provider returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	content := sb.String()
	if content == "" {
		return "", llm.NewProviderError(p.Name(), "empty_response", "provider returned no text content")
	}
	return content, nil
}

func (p *GeminiProvider) apiError(status int, body []byte) *llm.ProviderError {
	var parsed geminiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &llm.ProviderError{
			Provider:   p.Name(),
			StatusCode: status,
			Code:       parsed.Error.Status,
			Message:    parsed.Error.Message,
		}
	}
	return &llm.ProviderError{
		Provider:   p.Name(),
		StatusCode: status,
		Code:       "api_error",
		Message:    fmt.Sprintf("unexpected response: %s", string(body)),
	}
}
