package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisScanCount = 200

// globEscaper escapes the glob metacharacters of the SCAN MATCH pattern
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// RedisStore is a Store backed by Redis string keys.
// Every key is stored under the configured namespace.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(client *redis.Client, namespace string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.namespace+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("failed to get entry", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("failed to get entry: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.namespace+key, value, 0).Err(); err != nil {
		s.logger.Error("failed to set entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.namespace+key).Err(); err != nil {
		s.logger.Error("failed to remove entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	pattern := globEscaper.Replace(s.namespace+prefix) + "*"

	// SCAN may return a key more than once
	seen := make(map[string]struct{})
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, redisScanCount).Result()
		if err != nil {
			s.logger.Error("failed to scan entries", zap.String("prefix", prefix), zap.Error(err))
			return nil, fmt.Errorf("failed to scan entries: %w", err)
		}
		for _, key := range batch {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	entries := []Entry{}
	if len(keys) == 0 {
		return entries, nil
	}
	sort.Strings(keys)

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		s.logger.Error("failed to read entries", zap.String("prefix", prefix), zap.Error(err))
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	for i, raw := range values {
		value, ok := raw.(string)
		if !ok {
			// removed between SCAN and MGET
			continue
		}
		entries = append(entries, Entry{
			Key:   strings.TrimPrefix(keys[i], s.namespace),
			Value: value,
		})
	}

	return entries, nil
}

// Ping checks the connection to Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
