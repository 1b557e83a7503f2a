package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Portfolio ledger aggregation and valuation service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; real deployments configure via environment.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
