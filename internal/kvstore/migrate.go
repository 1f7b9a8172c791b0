package kvstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationsTable is the migration history table of the store schema
const MigrationsTable = "kvstore_schema_migrations"

// RunMigrations creates or upgrades the kv_entries table for the given dialect
func RunMigrations(db *sql.DB, dialect Dialect) error {
	source, err := iofs.New(migrationsFS, "migrations/"+dialect.MigrationsSubdir())
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := dialect.MigrationDriver(db, MigrationsTable)
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect.DriverName(), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
