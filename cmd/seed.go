package cmd

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe the store and load the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		return deps.ApiHandler.SeedService.Seed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
