package cmd

import (
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		deps.ApiHandler.Logger.Infow("starting api", "port", servePort)
		return deps.ApiHandler.StartApi(servePort)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3009, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
