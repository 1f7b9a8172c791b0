package kvstore

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (d *MySQLDialect) UpsertEntryQuery() string {
	return "INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) " +
		"ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = CURRENT_TIMESTAMP"
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) MigrationDriver(db *sql.DB, migrationsTable string) (database.Driver, error) {
	return migratemysql.WithInstance(db, &migratemysql.Config{
		MigrationsTable: migrationsTable,
	})
}
