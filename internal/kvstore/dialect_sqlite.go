package kvstore

import (
	"database/sql"

	"github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite, used for single-device local installs
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) UpsertEntryQuery() string {
	return "INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) " +
		"ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = CURRENT_TIMESTAMP"
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// A single writer avoids "database is locked" errors
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}
	// Keys are case-sensitive, prefix listing must be too
	if _, err := db.Exec("PRAGMA case_sensitive_like=ON;"); err != nil {
		return err
	}
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite3"
}

func (d *SQLiteDialect) MigrationDriver(db *sql.DB, migrationsTable string) (database.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{
		MigrationsTable: migrationsTable,
	})
}
