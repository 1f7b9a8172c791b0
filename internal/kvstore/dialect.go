package kvstore

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/golang-migrate/migrate/v4/database"
)

// Dialect defines the database-specific parts of the SQL store
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string
	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string
	// UpsertEntryQuery returns the statement inserting or replacing one entry.
	// It takes the key and the value as arguments.
	UpsertEntryQuery() string
	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error
	// MigrationsSubdir returns the subdirectory of the embedded migrations for this dialect
	MigrationsSubdir() string
	// MigrationDriver wraps an open connection into a golang-migrate database driver
	MigrationDriver(db *sql.DB, migrationsTable string) (database.Driver, error)
}

// Supported store drivers
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// DialectFor returns the SQL dialect of a store driver
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverMySQL:
		return NewMySQLDialect(), nil
	case DriverSQLite:
		return NewSQLiteDialect(), nil
	case DriverPostgres:
		return NewPostgresDialect(), nil
	default:
		return nil, fmt.Errorf("no SQL dialect for driver %q", driver)
	}
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
