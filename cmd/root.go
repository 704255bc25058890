package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wpagent/internal/config"
	"wpagent/internal/executor"
	"wpagent/internal/intent"
	"wpagent/internal/provider"
	"wpagent/internal/resolve"
	"wpagent/internal/safety"
	"wpagent/internal/wp"
)

var modelFlag string

// Package-level function variables for testability.
// Tests override these to avoid real provider/site calls.
var (
	newResolver = buildResolver
	newCMS      = func(site wp.Site) executor.CMS { return wp.NewClient(site) }
	ioIn        io.Reader = os.Stdin
	ioOut       io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "wpagent [natural language request]",
	Short: "Drive a WordPress site with natural language",
	Long: `wpagent translates natural language requests into WordPress REST API
calls and runs them against the configured site.

Examples:
  wpagent liste les articles
  wpagent crée un article intitulé "Bonjour"
  wpagent delete post 12`,
	Args:              cobra.ArbitraryArgs,
	RunE:              runAsk,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override model for this request")
}

func Execute() error {
	return rootCmd.Execute()
}

// buildResolver assembles the resolution pipeline from config: the local
// classifier always, the generative provider only when its credentials
// are present.
func buildResolver(cfg *config.Config) (*resolve.Resolver, error) {
	opts := resolve.Options{Classifier: intent.New()}

	pc := cfg.ProviderConfig()
	if modelFlag != "" {
		pc.Model = modelFlag
	}
	opts.Model = pc.Model

	if pc.Configured() {
		p, err := provider.NewFromConfig(pc)
		if err != nil {
			return nil, fmt.Errorf("creating provider: %w", err)
		}
		opts.Provider = p
	}

	return resolve.New(opts), nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	text := strings.Join(args, " ")

	if reply, ok := resolve.Normalize(text); ok {
		_, _ = fmt.Fprintln(ioOut, reply)
		return nil
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	res, err := newResolver(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	site := cfg.Site()
	o, err := res.Resolve(ctx, text, site)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "\n  %s\n", executor.Interpret(o))

	if ack, ok := resolve.Intercept(o); ok {
		_, _ = fmt.Fprintf(ioOut, "  %s\n", ack)
		return nil
	}

	if safety.Classify(o) == safety.Destructive {
		_, _ = fmt.Fprintln(ioOut, "  Warning: this will delete content.")
		if !executor.Confirm("  Are you sure?", false, ioIn, ioOut) {
			_, _ = fmt.Fprintln(ioOut, "  Cancelled.")
			return nil
		}
	}

	exec, err := executor.New(newCMS(site))
	if err != nil {
		return err
	}
	result, err := exec.Execute(ctx, o)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "  %s\n\n", executor.Summarize(result))
	return printResult(ioOut, result)
}

func printResult(out io.Writer, result json.RawMessage) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result, "", "  "); err != nil {
		_, _ = fmt.Fprintln(out, string(result))
		return nil
	}
	_, _ = fmt.Fprintln(out, pretty.String())
	return nil
}
