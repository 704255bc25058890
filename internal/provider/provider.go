// Package provider defines the generative-model backend interface and
// implementations. Backends are interchangeable: the extraction layer only
// sees normalized requests and responses, never provider-native types.
package provider

import "context"

// Message represents a single message in a conversation. Decoupled from any
// specific LLM API (OpenAI, Anthropic, Ollama) so callers don't import
// backend-specific types.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// ChatRequest represents a normalized LLM request.
type ChatRequest struct {
	Messages []Message
	Model    string
	// Temperature close to zero keeps structured extraction deterministic.
	Temperature float64
	// ExpectJSON asks the backend for a JSON-constrained response where the
	// API supports it. Backends without native JSON mode return prose that
	// may wrap JSON; the prompt parser handles that case.
	ExpectJSON bool
}

// Usage represents token usage metadata when available.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ChatResponse is a normalized provider response.
type ChatResponse struct {
	// Text is the assistant content handed to the extraction parser.
	Text string
	// Structured indicates the full text is already valid JSON.
	Structured bool
	// FinishReason is the provider stop reason, when available.
	FinishReason string
	// Usage is token usage metadata, when available.
	Usage Usage
}

// Capabilities describes optional provider features.
type Capabilities struct {
	JSONMode     bool
	Usage        bool
	FinishReason bool
}

// Provider sends conversations to an LLM backend.
type Provider interface {
	// Chat sends the request and returns a normalized provider response.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)

	// Name returns the provider name (e.g., "openai").
	Name() string

	// Capabilities returns feature support for the provider backend.
	Capabilities() Capabilities

	// Available checks if this provider is ready to use.
	Available(ctx context.Context) error
}
