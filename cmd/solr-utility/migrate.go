package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hofhaeckerei/solr-utility/internal/database"
)

func newMigrateCommand(a *app) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		Long: `The migrate command applies all pending schema migrations to the configured
database. With --seed it also loads the demo taxonomy into an empty database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			db, err := database.Connect(ctx, cfg.DBDriver, cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := database.Migrate(db, cfg.DBDriver); err != nil {
				return err
			}
			slog.Info("migrations applied", "driver", cfg.DBDriver)

			if seed {
				return database.Seed(ctx, db, cfg.DBDriver)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "populate an empty database with the demo taxonomy")
	return cmd
}
