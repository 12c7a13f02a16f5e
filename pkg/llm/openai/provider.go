package openai

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

const defaultBaseURL = "https://api.openai.com"

type OpenAIProvider struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.ChatProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		BaseURL:   defaultBaseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// --- Request/Response structs (Internal to this package) ---

type openAIRequest struct {
	Model           string          `json:"model"`
	Instructions    string          `json:"instructions,omitempty"`
	Input           []openAIMessage `json:"input"`
	MaxOutputTokens int             `json:"max_output_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse covers both the Responses API shape (output[]) and the
// chat-completions shape (choices[]) so either can be extracted from.
type openAIResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (p *OpenAIProvider) Generate(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{MaxTokens: llm.DefaultMaxTokens}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	input := make([]openAIMessage, len(history))
	for i, msg := range history {
		input[i] = openAIMessage{Role: msg.Role, Content: msg.Content}
	}

	payload, err := json.Marshal(openAIRequest{
		Model:           model,
		Instructions:    system,
		Input:           input,
		MaxOutputTokens: options.MaxTokens,
	})
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "marshal_error", err.Error())
	}

	url := p.BaseURL + "/v1/responses"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", llm.NewProviderError(p.Name(), "request_error", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
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

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", llm.NewProviderError(p.Name(), "parse_error", err.Error())
	}

	content := extractText(&parsed)
	if content == "" {
		return "", llm.NewProviderError(p.Name(), "empty_response", "provider returned no text content")
	}
	return content, nil
}

// extractText prefers the Responses API output list, concatenating the
// output_text segments of message items, and falls back to the first
// chat-completions choice.
func extractText(resp *openAIResponse) string {
	var sb strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				sb.WriteString(c.Text)
			}
		}
	}
	if sb.Len() > 0 {
		return sb.String()
	}

	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content
	}
	return ""
}

func (p *OpenAIProvider) apiError(status int, body []byte) *llm.ProviderError {
	var parsed openAIErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		code := parsed.Error.Code
		if code == "" {
			code = parsed.Error.Type
		}
		return &llm.ProviderError{
			Provider:   p.Name(),
			StatusCode: status,
			Code:       code,
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
