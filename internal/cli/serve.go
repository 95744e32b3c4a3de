// Package cli provides the command-line interface for the calculator suite.
package cli

import (
	"github.com/spf13/cobra"

	"fincalc/internal/server"
)

// addServeCommand adds the web front-end command.
func addServeCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the calculator web API",
		Example: `  fincalc serve --address :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			address, _ := cmd.Flags().GetString("address")
			if address == "" {
				address = app.Config.Server.Address
			}

			srv := server.New(app.Config, app.Logger, app.History)
			app.Logger.Info().Str("address", address).Msg("Starting calculator API")
			return srv.Run(address)
		},
	}

	cmd.Flags().String("address", "", "listen address (default from config)")
	rootCmd.AddCommand(cmd)
}
