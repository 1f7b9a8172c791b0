package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestStore creates a SQL store with a mock database
func setupTestStore(t *testing.T, dialect Dialect) (*SQLStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	store := NewSQLStore(db, dialect, logger)

	cleanup := func() {
		db.Close()
	}

	return store, mock, cleanup
}

func TestNewSQLStore(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}
	dialect := NewMySQLDialect()

	store := NewSQLStore(db, dialect, logger)

	assert.NotNil(t, store)
	assert.Equal(t, db, store.db)
	assert.Equal(t, dialect, store.dialect)
	assert.Equal(t, logger, store.logger)
}

func TestSQLStore_Get(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		setupMock     func(sqlmock.Sqlmock)
		expectedValue string
		expectedFound bool
		expectedError bool
	}{
		{
			name:    "found mysql",
			dialect: NewMySQLDialect(),
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"entry_value"}).AddRow(`{"theme":"dark"}`)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)).
					WithArgs(KeySettings).
					WillReturnRows(rows)
			},
			expectedValue: `{"theme":"dark"}`,
			expectedFound: true,
		},
		{
			name:    "found postgres rewrites placeholders",
			dialect: NewPostgresDialect(),
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"entry_value"}).AddRow(`[]`)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = $1`)).
					WithArgs(KeySettings).
					WillReturnRows(rows)
			},
			expectedValue: `[]`,
			expectedFound: true,
		},
		{
			name:    "absent key",
			dialect: NewSQLiteDialect(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)).
					WithArgs(KeySettings).
					WillReturnError(sql.ErrNoRows)
			},
			expectedFound: false,
		},
		{
			name:    "database error",
			dialect: NewMySQLDialect(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)).
					WithArgs(KeySettings).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := setupTestStore(t, tt.dialect)
			defer cleanup()

			tt.setupMock(mock)

			value, found, err := store.Get(context.Background(), KeySettings)

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, found)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedFound, found)
				assert.Equal(t, tt.expectedValue, value)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_Set(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		expectedQuery string
		execErr       error
		expectedError bool
	}{
		{
			name:          "mysql upsert",
			dialect:       NewMySQLDialect(),
			expectedQuery: `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE`,
		},
		{
			name:          "sqlite upsert",
			dialect:       NewSQLiteDialect(),
			expectedQuery: `INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?) ON CONFLICT(entry_key) DO UPDATE`,
		},
		{
			name:          "postgres upsert",
			dialect:       NewPostgresDialect(),
			expectedQuery: `INSERT INTO kv_entries (entry_key, entry_value) VALUES ($1, $2) ON CONFLICT (entry_key) DO UPDATE`,
		},
		{
			name:          "database error",
			dialect:       NewMySQLDialect(),
			expectedQuery: `INSERT INTO kv_entries`,
			execErr:       errors.New("database error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := setupTestStore(t, tt.dialect)
			defer cleanup()

			expectation := mock.ExpectExec(regexp.QuoteMeta(tt.expectedQuery)).
				WithArgs(KeyNotes, `[]`)
			if tt.execErr != nil {
				expectation.WillReturnError(tt.execErr)
			} else {
				expectation.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := store.Set(context.Background(), KeyNotes, `[]`)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_Remove(t *testing.T) {
	tests := []struct {
		name          string
		execErr       error
		expectedError bool
	}{
		{name: "success"},
		{name: "database error", execErr: errors.New("database error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := setupTestStore(t, NewMySQLDialect())
			defer cleanup()

			expectation := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE entry_key = ?`)).
				WithArgs(KeySession)
			if tt.execErr != nil {
				expectation.WillReturnError(tt.execErr)
			} else {
				expectation.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := store.Remove(context.Background(), KeySession)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_List(t *testing.T) {
	listQuery := regexp.QuoteMeta(`SELECT entry_key, entry_value FROM kv_entries WHERE entry_key LIKE ? ESCAPE '!' ORDER BY entry_key`)

	tests := []struct {
		name          string
		prefix        string
		setupMock     func(sqlmock.Sqlmock)
		expectedCount int
		expectedError bool
	}{
		{
			name:   "escapes wildcards in prefix",
			prefix: "dev_1:",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"entry_key", "entry_value"}).
					AddRow("dev_1:antigone_notes", "[]").
					AddRow("dev_1:antigone_progress", "{}")
				mock.ExpectQuery(listQuery).
					WithArgs("dev!_1:%").
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name:   "empty result",
			prefix: "",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(listQuery).
					WithArgs("%").
					WillReturnRows(sqlmock.NewRows([]string{"entry_key", "entry_value"}))
			},
			expectedCount: 0,
		},
		{
			name:   "query error",
			prefix: "",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(listQuery).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name:   "rows iteration error",
			prefix: "",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"entry_key", "entry_value"}).
					AddRow("a", "1").
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(listQuery).WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, cleanup := setupTestStore(t, NewMySQLDialect())
			defer cleanup()

			tt.setupMock(mock)

			entries, err := store.List(context.Background(), tt.prefix)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, entries)
			} else {
				assert.NoError(t, err)
				assert.Len(t, entries, tt.expectedCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
