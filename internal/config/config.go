// Package config manages the wpagent configuration file at
// ~/.wpagent/config.yaml. Environment variables override file values, so
// deployments can keep secrets out of the file entirely.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wpagent/internal/provider"
	"wpagent/internal/wp"
)

var ErrNotFound = errors.New("config file not found")

type Config struct {
	WordPress WordPress `yaml:"wordpress"`
	AI        AI        `yaml:"ai"`
	Server    Server    `yaml:"server"`
}

// WordPress holds the default site credentials. Per-request credentials
// from the gateway take priority over these.
type WordPress struct {
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password,omitempty"`
	AppPassword string `yaml:"app_password,omitempty"`
}

type AI struct {
	Provider  string    `yaml:"provider"`
	Model     string    `yaml:"model"`
	OpenAI    OpenAI    `yaml:"openai"`
	Anthropic Anthropic `yaml:"anthropic"`
	Ollama    Ollama    `yaml:"ollama"`
}

type OpenAI struct {
	Host   string `yaml:"host,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
}

type Anthropic struct {
	APIKey string `yaml:"api_key,omitempty"`
}

type Ollama struct {
	Host string `yaml:"host"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Dir returns the config directory path (~/.wpagent).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wpagent")
}

// Path returns the config file path (~/.wpagent/config.yaml).
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Exists checks if the config file exists.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file and applies environment overrides. Returns
// ErrNotFound if the file doesn't exist; environment-only setups should
// start from Default and call ApplyEnv.
func Load() (*Config, error) {
	cfg, err := loadFrom(Path())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults when it
// doesn't exist. Environment overrides apply either way.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		cfg.ApplyEnv()
		return cfg, nil
	}
	return cfg, err
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed. The
// file may contain credentials, so it is not world-readable.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(Path(), data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func marshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		WordPress: WordPress{
			URL: "https://example.com",
		},
		AI: AI{
			Provider: "openai",
			Ollama: Ollama{
				Host: "http://localhost:11434",
			},
		},
		Server: Server{
			Host: "0.0.0.0",
			Port: 3000,
		},
	}
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	setString(&c.WordPress.URL, "WP_URL")
	setString(&c.WordPress.Username, "WP_USERNAME")
	setString(&c.WordPress.Password, "WP_PASSWORD")
	setString(&c.WordPress.AppPassword, "WP_APP_PASSWORD")
	setString(&c.AI.Provider, "AI_PROVIDER")
	setString(&c.AI.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.AI.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setString(&c.AI.Ollama.Host, "OLLAMA_HOST")
	setString(&c.Server.Host, "HOST")

	switch c.AI.Provider {
	case "anthropic":
		setString(&c.AI.Model, "ANTHROPIC_MODEL")
	default:
		setString(&c.AI.Model, "OPENAI_MODEL")
	}

	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Site returns the default site credentials.
func (c *Config) Site() wp.Site {
	return wp.Site{
		URL:         c.WordPress.URL,
		Username:    c.WordPress.Username,
		Password:    c.WordPress.Password,
		AppPassword: c.WordPress.AppPassword,
	}
}

// ProviderConfig returns the provider factory settings.
func (c *Config) ProviderConfig() provider.BuildConfig {
	return provider.BuildConfig{
		Name:            c.AI.Provider,
		Model:           c.AI.Model,
		OpenAIHost:      c.AI.OpenAI.Host,
		OpenAIAPIKey:    c.AI.OpenAI.APIKey,
		AnthropicAPIKey: c.AI.Anthropic.APIKey,
		OllamaHost:      c.AI.Ollama.Host,
	}
}
