package claude

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

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

type ClaudeProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.ChatProvider = &ClaudeProvider{}

func NewClaudeProvider(apiKey, modelName string) *ClaudeProvider {
	return &ClaudeProvider{
		BaseURL:   defaultBaseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			// LLM generation can be slow. Keep this generous.
			Timeout: 5 * time.Minute,
		},
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

// --- Request/Response structs (Internal to this package) ---

type claudeRequest struct {
	Model     string          `json:"model"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (p *ClaudeProvider) Generate(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{MaxTokens: llm.DefaultMaxTokens}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]claudeMessage, len(history))
	for i, msg := range history {
		messages[i] = claudeMessage{Role: msg.Role, Content: msg.Content}
	}

	payload, err := json.Marshal(claudeRequest{
		Model:     model,
		System:    system,
		Messages:  messages,
		MaxTokens: options.MaxTokens,
	})
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "marshal_error", err.Error())
	}

	url := p.BaseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "request_error", err.Error())
	}
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "transport_error", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "read_error", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", p.apiError(resp.StatusCode, body)
	}

	var parsed claudeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", llm.NewProviderError(p.Name(), "parse_error", err.Error())
	}

	// Concatenate only the text-bearing blocks.
	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	content := sb.String()
	if content == "" {
		return "", llm.NewProviderError(p.Name(), "empty_response", "provider returned no text content")
	}
	return content, nil
}

func (p *ClaudeProvider) apiError(status int, body []byte) *llm.ProviderError {
	var parsed claudeErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &llm.ProviderError{
			Provider:   p.Name(),
			StatusCode: status,
			Code:       parsed.Error.Type,
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
