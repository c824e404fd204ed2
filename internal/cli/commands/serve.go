package commands

import (
	"github.com/spf13/cobra"

	"github.com/datacharts-labs/datacharts/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the HTTP server exposing the function catalog, expression
parsing and validation, and the in-memory dataset store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			// Local flags override the loaded config.
			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}

			srv := server.New(server.Config{
				Addr:      cfg.Server.Addr(),
				Processor: newProcessor(cmd.Context()),
				Logger:    logger,
			})
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().String("host", "", "Listen host")
	cmd.Flags().Int("port", 0, "Listen port")
	return cmd
}
