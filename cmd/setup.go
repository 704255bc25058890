package cmd

import (
	"github.com/spf13/cobra"

	"wpagent/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure wpagent (first-time or reconfigure)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setup.Run(ioIn, ioOut)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
