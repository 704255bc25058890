package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicHost       = "https://api.anthropic.com/v1"
	anthropicAPIVersion = "2023-06-01"
	anthropicMaxTokens  = 1000
)

// AnthropicProvider implements Provider using the Anthropic Messages API.
// Unlike OpenAI there is no native JSON mode: responses may wrap the JSON
// object in surrounding prose, which the prompt parser extracts.
type AnthropicProvider struct {
	client *http.Client
	host   string
	model  string
	apiKey string
}

// NewAnthropic creates an AnthropicProvider for the given model.
func NewAnthropic(model, apiKey string) (*AnthropicProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model cannot be empty")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("anthropic api key is required (set ANTHROPIC_API_KEY)")
	}
	return &AnthropicProvider{
		client: &http.Client{Timeout: 30 * time.Second},
		host:   anthropicHost,
		model:  model,
		apiKey: apiKey,
	}, nil
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

func (a *AnthropicProvider) Capabilities() Capabilities {
	return Capabilities{
		JSONMode:     false,
		Usage:        true,
		FinishReason: true,
	}
}

// Available probes the Messages endpoint with a minimal request. There is
// no cheap list endpoint; a 200 or 400 both mean the key and host work,
// while 401 means the key is bad.
func (a *AnthropicProvider) Available(ctx context.Context) error {
	probe := fmt.Sprintf(`{"model":%q,"max_tokens":1,"messages":[{"role":"user","content":"ping"}]}`, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/messages",
		bytes.NewReader([]byte(probe)))
	if err != nil {
		return fmt.Errorf("building anthropic availability request: %w", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("checking anthropic availability: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("anthropic rejected the api key")
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusBadRequest:
		return nil
	default:
		return fmt.Errorf("anthropic availability check failed: %s", readErrorBody(resp.Body))
	}
}

// Chat sends the conversation to the Messages API. System messages are
// lifted into the top-level system field, which is how the Messages API
// expects instructions to arrive.
func (a *AnthropicProvider) Chat(ctx context.Context, chatReq ChatRequest) (ChatResponse, error) {
	type anthropicMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	type anthropicRequest struct {
		Model       string             `json:"model"`
		MaxTokens   int                `json:"max_tokens"`
		System      string             `json:"system,omitempty"`
		Temperature float64            `json:"temperature"`
		Messages    []anthropicMessage `json:"messages"`
	}

	var system string
	apiMessages := make([]anthropicMessage, 0, len(chatReq.Messages))
	for _, m := range chatReq.Messages {
		if m.Role == "system" {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		apiMessages = append(apiMessages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       resolveModel(chatReq.Model, a.model),
		MaxTokens:   anthropicMaxTokens,
		System:      system,
		Temperature: chatReq.Temperature,
		Messages:    apiMessages,
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("encoding anthropic chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/messages",
		bytes.NewReader(body))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("building anthropic chat request: %w", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("anthropic chat: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return ChatResponse{}, fmt.Errorf("anthropic chat failed: %s", readErrorBody(resp.Body))
	}

	var decoded struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
		Usage      struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ChatResponse{}, fmt.Errorf("decoding anthropic chat response: %w", err)
	}
	if len(decoded.Content) == 0 {
		return ChatResponse{}, fmt.Errorf("empty response from model")
	}

	result := strings.TrimSpace(decoded.Content[0].Text)
	if result == "" {
		return ChatResponse{}, fmt.Errorf("empty response from model")
	}

	usage := Usage{
		InputTokens:  decoded.Usage.InputTokens,
		OutputTokens: decoded.Usage.OutputTokens,
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens

	return ChatResponse{
		Text:         result,
		Structured:   isStructuredJSON(chatReq.ExpectJSON, result),
		FinishReason: decoded.StopReason,
		Usage:        usage,
	}, nil
}

func (a *AnthropicProvider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
}
