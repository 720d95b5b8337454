package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"leet_tracker/internal/platform/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Open connects to the backend selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DBConnStr)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %q or %q)", cfg.DBDriver, config.DriverPostgres, config.DriverSQLite)
	}
}

// Migrate creates the users, problems and chat_messages tables for driver.
// Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	content, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("no schema for driver %q: %w", driver, err)
	}
	for _, stmt := range strings.Split(string(content), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", driver, err)
		}
	}
	return nil
}
