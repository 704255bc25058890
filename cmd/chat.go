package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wpagent/internal/config"
	"wpagent/internal/repl"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive WordPress assistant session",
	Long: `Start an interactive chat session against the configured site.
Ask for content in plain language and review each operation before it runs.

Type 'exit' or 'quit' to end the session. Ctrl+D also works.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	res, err := newResolver(cfg)
	if err != nil {
		return err
	}

	site := cfg.Site()
	return repl.Run(res, newCMS(site), site, ioIn, ioOut)
}
