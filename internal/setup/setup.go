// Package setup handles first-run onboarding: collecting site credentials,
// choosing a model provider, and writing the config file.
package setup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"wpagent/internal/config"
	"wpagent/internal/provider"
)

// Run executes the interactive setup flow.
// in and out are injectable for testability.
func Run(in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "wpagent Setup")
	_, _ = fmt.Fprintln(out, "=============")
	_, _ = fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	cfg := config.Default()

	if err := configureSite(cfg, scanner, out); err != nil {
		return err
	}
	if err := configureProvider(cfg, scanner, out); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfig saved to %s\n", config.Path())
	_, _ = fmt.Fprintln(out, "Ready! Try: wpagent liste les articles")
	return nil
}

func configureSite(cfg *config.Config, scanner *bufio.Scanner, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "WordPress site")

	siteURL, err := readSiteURL(scanner, out)
	if err != nil {
		return err
	}
	cfg.WordPress.URL = siteURL

	_, _ = fmt.Fprint(out, "  Username: ")
	username := readLine(scanner)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	cfg.WordPress.Username = username

	_, _ = fmt.Fprint(out, "  Application password: ")
	appPassword := readLine(scanner)
	if appPassword == "" {
		return fmt.Errorf("application password is required. Create one under Users > Profile in the WordPress admin")
	}
	cfg.WordPress.AppPassword = appPassword

	if isSiteReachable(siteURL) {
		_, _ = fmt.Fprintln(out, "[ok] Site REST API is reachable")
	} else {
		_, _ = fmt.Fprintln(out, "[!!] Could not reach the site REST API; check the URL once setup finishes")
	}
	return nil
}

func readSiteURL(scanner *bufio.Scanner, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "  Site URL: ")
	raw := readLine(scanner)
	if raw == "" {
		return "", fmt.Errorf("site URL is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid site URL: %s", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func configureProvider(cfg *config.Config, scanner *bufio.Scanner, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "\nModel provider")
	_, _ = fmt.Fprintln(out, "  1. openai")
	_, _ = fmt.Fprintln(out, "  2. anthropic")
	_, _ = fmt.Fprintln(out, "  3. ollama (local)")
	_, _ = fmt.Fprint(out, "\nSelect provider [1]: ")

	switch readLine(scanner) {
	case "", "1":
		cfg.AI.Provider = "openai"
		_, _ = fmt.Fprint(out, "  OpenAI API key (blank to use OPENAI_API_KEY): ")
		cfg.AI.OpenAI.APIKey = readLine(scanner)
		cfg.AI.Model = readModel(scanner, out, "gpt-4o-mini")
	case "2":
		cfg.AI.Provider = "anthropic"
		_, _ = fmt.Fprint(out, "  Anthropic API key (blank to use ANTHROPIC_API_KEY): ")
		cfg.AI.Anthropic.APIKey = readLine(scanner)
		cfg.AI.Model = readModel(scanner, out, "claude-3-5-sonnet-20240620")
	case "3":
		cfg.AI.Provider = "ollama"
		return configureOllama(cfg, scanner, out)
	default:
		return fmt.Errorf("invalid selection")
	}
	return nil
}

func readModel(scanner *bufio.Scanner, out io.Writer, defaultModel string) string {
	_, _ = fmt.Fprintf(out, "  Model [%s]: ", defaultModel)
	if model := readLine(scanner); model != "" {
		return model
	}
	return defaultModel
}

func configureOllama(cfg *config.Config, scanner *bufio.Scanner, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "  Ollama host [%s]: ", provider.DefaultOllamaHost)
	host := readLine(scanner)
	if host == "" {
		host = provider.DefaultOllamaHost
	}
	cfg.AI.Ollama.Host = host

	if !isOllamaReachable(host) {
		return fmt.Errorf("ollama is not reachable at %s. Start it with: ollama serve", host)
	}
	_, _ = fmt.Fprintln(out, "[ok] Ollama is running")

	client, err := ollamaClient(host)
	if err != nil {
		return err
	}
	model, err := selectModel(client, scanner, out)
	if err != nil {
		return err
	}
	cfg.AI.Model = model
	return nil
}

func selectModel(client *api.Client, scanner *bufio.Scanner, out io.Writer) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := client.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing models: %w", err)
	}
	if len(models.Models) == 0 {
		return "", fmt.Errorf("no models found. Pull one with: ollama pull llama3.2")
	}

	_, _ = fmt.Fprintln(out, "\nAvailable models:")
	for i, m := range models.Models {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, m.Name)
	}
	_, _ = fmt.Fprint(out, "\nSelect default model [1]: ")

	input := readLine(scanner)

	idx := 0
	if input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(models.Models) {
			return "", fmt.Errorf("invalid selection: %s", input)
		}
		idx = n - 1
	}

	selected := models.Models[idx].Name
	_, _ = fmt.Fprintf(out, "[ok] Selected: %s\n", selected)
	return selected, nil
}

func ollamaClient(host string) (*api.Client, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parsing host URL: %w", err)
	}
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return api.NewClient(base, httpClient), nil
}

func isOllamaReachable(host string) bool {
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(host)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// isSiteReachable probes the REST API index. A 401 still proves the API is
// there, so any response counts.
func isSiteReachable(siteURL string) bool {
	client := http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(strings.TrimRight(siteURL, "/") + "/wp-json")
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// readLine reads a single line from the scanner, trimming whitespace.
func readLine(scanner *bufio.Scanner) string {
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}
