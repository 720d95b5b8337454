package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leet_tracker/internal/platform/database"
)

var (
	migrateDriver     string
	migrateSQLitePath string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users, problems and chat_messages tables",
	Long: `Apply the schema for the configured DB_DRIVER. Every statement is
idempotent, so running it against an up-to-date database is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDriver, "driver", "", "Override DB_DRIVER (postgres or sqlite)")
	migrateCmd.Flags().StringVar(&migrateSQLitePath, "sqlite-path", "", "Override SQLITE_PATH")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if migrateDriver != "" {
		cfg.DBDriver = migrateDriver
	}
	if migrateSQLitePath != "" {
		cfg.SQLitePath = migrateSQLitePath
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return err
	}
	log.Info("Schema migrated", zap.String("driver", cfg.DBDriver))
	fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DBDriver)
	return nil
}
