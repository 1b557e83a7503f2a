package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portfoliotracker/internal/evolution"
)

// publish-evolution pushes an evolution document for a portfolio so running
// metric engines pick it up live. Mostly used in dev against seeded data.
var publishEvolutionCmd = &cobra.Command{
	Use:   "publish-evolution <portfolio-id> <document.json>",
	Short: "Publish an evolution document for a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		portfolioID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid portfolio id: %w", err)
		}

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		// Reject junk before it reaches subscribers.
		if _, err := evolution.ParseDocument(raw); err != nil {
			return err
		}

		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		if err := evolution.PublishDocument(cmd.Context(), deps.RedisClient, portfolioID, raw); err != nil {
			return err
		}

		deps.ApiHandler.Logger.Infow("published evolution document",
			"portfolioID", portfolioID,
			"bytes", len(raw),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishEvolutionCmd)
}
