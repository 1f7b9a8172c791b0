package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// likeEscaper escapes LIKE wildcards so that key prefixes match literally
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SQLStore is a Store backed by the kv_entries table
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

// NewSQLStore creates a new SQL-backed store.
// The kv_entries table must exist, see RunMigrations.
func NewSQLStore(db *sql.DB, dialect Dialect, logger *zap.Logger) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// Method Get is a Store implementation for retrieving an entry from a database.
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := s.dialect.RewriteQuery(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("failed to get entry", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("failed to get entry: %w", err)
	}

	return value, true, nil
}

// Method Set is a Store implementation for inserting or replacing an entry in a database.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertEntryQuery())

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.logger.Error("failed to set entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set entry: %w", err)
	}

	return nil
}

// Method Remove is a Store implementation for deleting an entry from a database.
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	query := s.dialect.RewriteQuery(`DELETE FROM kv_entries WHERE entry_key = ?`)

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		s.logger.Error("failed to remove entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	return nil
}

// Method List is a Store implementation for retrieving entries by key prefix from a database.
func (s *SQLStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	query := s.dialect.RewriteQuery(`
		SELECT entry_key, entry_value
		FROM kv_entries
		WHERE entry_key LIKE ? ESCAPE '!'
		ORDER BY entry_key
	`)

	rows, err := s.db.QueryContext(ctx, query, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		s.logger.Error("failed to query entries", zap.String("prefix", prefix), zap.Error(err))
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			s.logger.Error("failed to scan entry", zap.Error(err))
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
