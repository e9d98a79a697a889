// cmd/server/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookxchange/backend/internal/database"
)

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Initialize(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close(db)

			if err := database.RunMigrations(db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info("Migrations applied")

			if !seed {
				return nil
			}
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to seed demo data in production")
			}
			if err := database.SeedDemoData(db, cfg.Listings.DefaultCollege); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
			log.Info("Demo data seeded")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Insert demo profiles and listings")
	return cmd
}
