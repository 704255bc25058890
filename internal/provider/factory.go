package provider

import (
	"fmt"
	"strings"
)

// BuildConfig contains provider-specific runtime settings used by the factory.
type BuildConfig struct {
	Name            string
	Model           string
	OpenAIHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
}

// NewFromConfig builds the configured provider implementation. It is called
// once at startup; the resulting Provider is shared by all requests and
// never re-instantiated per request.
func NewFromConfig(cfg BuildConfig) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "openai":
		return NewOpenAI(cfg.OpenAIHost, cfg.Model, cfg.OpenAIAPIKey)
	case "anthropic":
		return NewAnthropic(cfg.Model, cfg.AnthropicAPIKey)
	case "ollama":
		return NewOllama(cfg.OllamaHost, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Name)
	}
}

// Configured reports whether cfg names a provider and carries the
// credentials it needs. The resolver uses this to decide whether the
// generative path is available at all.
func (cfg BuildConfig) Configured() bool {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "openai":
		return cfg.OpenAIAPIKey != ""
	case "anthropic":
		return cfg.AnthropicAPIKey != ""
	case "ollama":
		return true
	default:
		return false
	}
}
