package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/savings-sprint/internal/config"
	"github.com/Veraticus/savings-sprint/internal/storage"
)

func migrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates automatically; this one is for checking the
schema or preparing a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			slog.Info("Starting database migration", "database", cfg.DatabasePath, "status_only", status)

			store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			current, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}

			if status {
				fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d of %d (%s)\n", current, storage.ExpectedSchemaVersion, cfg.DatabasePath)
				return nil
			}

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			after, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			if after == current {
				fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (schema version %d)\n", after)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated database from schema version %d to %d\n", current, after)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show the schema version without migrating")
	return cmd
}
