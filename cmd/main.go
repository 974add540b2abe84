package main

import (
	"os"

	"github.com/spf13/cobra"

	"taxifleet/config"
	"taxifleet/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "taxifleet",
		Short:        "Taxi fleet management web app",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context())
		},
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), createDriverCmd())
	return cmd
}

// setup loads configuration and builds the logger every command shares.
func setup() (config.Config, logger.ILogger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.ServiceName, cfg.LoggerLevel)
}
