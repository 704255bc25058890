package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wpagent/internal/config"
	"wpagent/internal/gateway"
)

var (
	hostFlag string
	portFlag int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	Long: `Run the HTTP gateway exposing the natural language endpoints
(/api/nlp, /api/mcp) and the REST passthrough (/api/wordpress/...).

Requests may carry their own site credentials; the configured site is the
fallback when they do not.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&hostFlag, "host", "", "listen address (overrides config)")
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	res, err := newResolver(cfg)
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	host := cfg.Server.Host
	if hostFlag != "" {
		host = hostFlag
	}
	port := cfg.Server.Port
	if portFlag != 0 {
		port = portFlag
	}

	srv := gateway.New(gateway.Options{
		Resolver:    res,
		DefaultSite: cfg.Site(),
		Logger:      log,
	})
	return srv.ListenAndServe(fmt.Sprintf("%s:%d", host, port))
}
