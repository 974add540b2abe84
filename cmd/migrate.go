package main

import (
	"github.com/spf13/cobra"

	"taxifleet/storage/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log := setup()
			defer func() { _ = log.Sync() }()
			return postgres.Migrate(cfg, log)
		},
	}
}
