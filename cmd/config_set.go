package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wpagent/internal/config"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Supported keys:
  wordpress.url           Site URL
  wordpress.username      WordPress username
  wordpress.password      WordPress password (JWT auth)
  wordpress.app_password  Application password (basic auth)
  provider                Model provider (openai/anthropic/ollama)
  model                   Model name (e.g., gpt-4o-mini)
  openai.host             OpenAI-compatible API base URL
  openai.api_key          OpenAI API key
  anthropic.api_key       Anthropic API key
  ollama.host             Ollama server URL
  server.host             Gateway listen address
  server.port             Gateway listen port`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Default()
	}

	switch key {
	case "wordpress.url":
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("invalid URL %q: %w", value, err)
		}
		cfg.WordPress.URL = strings.TrimRight(value, "/")
	case "wordpress.username":
		cfg.WordPress.Username = value
	case "wordpress.password":
		cfg.WordPress.Password = value
	case "wordpress.app_password":
		cfg.WordPress.AppPassword = value
	case "provider":
		switch strings.ToLower(value) {
		case "openai", "anthropic", "ollama":
			cfg.AI.Provider = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown provider %q (openai/anthropic/ollama)", value)
		}
	case "model":
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("model cannot be empty")
		}
		cfg.AI.Model = value
	case "openai.host":
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("invalid URL %q: %w", value, err)
		}
		cfg.AI.OpenAI.Host = value
	case "openai.api_key":
		cfg.AI.OpenAI.APIKey = value
	case "anthropic.api_key":
		cfg.AI.Anthropic.APIKey = value
	case "ollama.host":
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("invalid URL %q: %w", value, err)
		}
		cfg.AI.Ollama.Host = value
	case "server.host":
		cfg.Server.Host = value
	case "server.port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", value)
		}
		cfg.Server.Port = port
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
	return nil
}
