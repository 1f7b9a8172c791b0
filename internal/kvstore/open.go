package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Options selects and configures a store backend
type Options struct {
	Driver string // memory, mysql, sqlite, postgres or redis
	DSN    string // connection string of the SQL drivers, file path for sqlite

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string
}

// Open connects the configured backend, runs the schema migrations of SQL backends
// and returns the store together with the function releasing its resources.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, func() error, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), func() error { return nil }, nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		store := NewRedisStore(client, opts.RedisNamespace, logger)
		if err := store.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return store, client.Close, nil
	}

	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db, dialect); err != nil {
		db.Close()
		return nil, nil, err
	}

	return NewSQLStore(db, dialect, logger), db.Close, nil
}
