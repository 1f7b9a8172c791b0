package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEVICE_TOKEN_SECRET", "secret")

	cfg, err := load(newViper(t.TempDir()))

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, kvstore.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "antigone.db", cfg.Store.SQLitePath)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "data/students.json", cfg.Content.RosterPath)
	assert.Equal(t, "data/content", cfg.Content.Dir)
	assert.Equal(t, 8760*time.Hour, cfg.Device.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Backup.Interval)
	assert.Equal(t, 7, cfg.Backup.Retain)
	assert.Empty(t, cfg.Backup.Dir)
	assert.Empty(t, cfg.Contributions.DatabaseURL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "antigone")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "study")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DEVICE_TOKEN_SECRET", "secret")
	t.Setenv("DEVICE_TOKEN_TTL", "720h")
	t.Setenv("API_KEY", "admin-key")
	t.Setenv("BACKUP_DIR", "/var/backups/antigone")
	t.Setenv("BACKUP_RETAIN", "3")

	cfg, err := load(newViper(t.TempDir()))

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 720*time.Hour, cfg.Device.TokenTTL)
	assert.Equal(t, "admin-key", cfg.APIKey)
	assert.Equal(t, "/var/backups/antigone", cfg.Backup.Dir)
	assert.Equal(t, 3, cfg.Backup.Retain)
	assert.Equal(t, "antigone:pass@tcp(db:3307)/study?parseTime=true&charset=utf8mb4", cfg.DSN())

	opts := cfg.StoreOptions()
	assert.Equal(t, kvstore.DriverMySQL, opts.Driver)
	assert.Equal(t, cfg.DSN(), opts.DSN)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("store:\n  driver: redis\nredis:\n  host: cache\n  namespace: class-a\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("DEVICE_TOKEN_SECRET", "secret")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := load(newViper(dir))

	require.NoError(t, err)
	opts := cfg.StoreOptions()
	assert.Equal(t, kvstore.DriverRedis, opts.Driver)
	assert.Equal(t, "cache:6380", opts.RedisAddr)
	assert.Equal(t, "class-a", opts.RedisNamespace)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{
			name:          "missing device secret",
			env:           map[string]string{},
			expectedError: "DEVICE_TOKEN_SECRET is required",
		},
		{
			name:          "unknown driver",
			env:           map[string]string{"DEVICE_TOKEN_SECRET": "s", "STORE_DRIVER": "mongo"},
			expectedError: "invalid STORE_DRIVER",
		},
		{
			name:          "mysql without host",
			env:           map[string]string{"DEVICE_TOKEN_SECRET": "s", "STORE_DRIVER": "mysql"},
			expectedError: "DB_HOST is required",
		},
		{
			name:          "postgres without url",
			env:           map[string]string{"DEVICE_TOKEN_SECRET": "s", "STORE_DRIVER": "postgres"},
			expectedError: "POSTGRES_URL is required",
		},
		{
			name:          "invalid ttl",
			env:           map[string]string{"DEVICE_TOKEN_SECRET": "s", "DEVICE_TOKEN_TTL": "0s"},
			expectedError: "invalid DEVICE_TOKEN_TTL",
		},
		{
			name:          "invalid backup interval",
			env:           map[string]string{"DEVICE_TOKEN_SECRET": "s", "BACKUP_DIR": "backups", "BACKUP_INTERVAL": "0s"},
			expectedError: "invalid BACKUP_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEVICE_TOKEN_SECRET", "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := load(newViper(t.TempDir()))

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestStoreOptions(t *testing.T) {
	tests := []struct {
		name        string
		store       StoreConfig
		expectedDSN string
	}{
		{name: "sqlite", store: StoreConfig{Driver: kvstore.DriverSQLite, SQLitePath: "local.db"}, expectedDSN: "local.db"},
		{name: "postgres", store: StoreConfig{Driver: kvstore.DriverPostgres, PostgresURL: "postgres://db/antigone"}, expectedDSN: "postgres://db/antigone"},
		{name: "memory", store: StoreConfig{Driver: kvstore.DriverMemory}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Store: tt.store}

			opts := cfg.StoreOptions()

			assert.Equal(t, tt.store.Driver, opts.Driver)
			assert.Equal(t, tt.expectedDSN, opts.DSN)
		})
	}
}

func TestLoadWith_StoreOnly(t *testing.T) {
	t.Setenv("DEVICE_TOKEN_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := load(newViper(t.TempDir()))
	require.EqualError(t, err, "DEVICE_TOKEN_SECRET is required")

	cfg, err := loadWith(newViper(t.TempDir()), (*Config).validateStore)
	require.NoError(t, err)
	assert.Equal(t, kvstore.DriverMemory, cfg.Store.Driver)

	t.Setenv("STORE_DRIVER", "mongo")
	_, err = loadWith(newViper(t.TempDir()), (*Config).validateStore)
	assert.EqualError(t, err, `invalid STORE_DRIVER: "mongo"`)
}
