package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/antigone-study/backend/internal/kvstore"
	"go.uber.org/zap"
)

// jsonRecord reads and writes one JSON-encoded record stored under a fixed key
type jsonRecord[T any] struct {
	store  kvstore.Store
	key    string
	logger *zap.Logger
}

// load decodes the record. The second value is false when the record is absent.
// An undecodable record is reported as a *corruptRecordError.
func (r jsonRecord[T]) load(ctx context.Context) (*T, bool, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, &corruptRecordError{key: r.key, err: err}
	}

	return &value, true, nil
}

// loadOrDefault decodes the record, treating an undecodable record as absent
func (r jsonRecord[T]) loadOrDefault(ctx context.Context) (*T, bool, error) {
	value, ok, err := r.load(ctx)
	var cerr *corruptRecordError
	if errors.As(err, &cerr) {
		r.logger.Warn("ignoring undecodable record", zap.String("key", cerr.key), zap.Error(cerr.err))
		return nil, false, nil
	}
	return value, ok, err
}

func (r jsonRecord[T]) save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		r.logger.Error("failed to write record", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}

func (r jsonRecord[T]) remove(ctx context.Context) error {
	if err := r.store.Remove(ctx, r.key); err != nil {
		r.logger.Error("failed to remove record", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("failed to remove %s: %w", r.key, err)
	}
	return nil
}

func (r jsonRecord[T]) exists(ctx context.Context) (bool, error) {
	_, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", r.key, err)
	}
	return ok, nil
}

// corruptRecordError reports a stored value that is not valid JSON for its record type
type corruptRecordError struct {
	key string
	err error
}

func (e *corruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %s: %v", e.key, e.err)
}

func (e *corruptRecordError) Unwrap() error {
	return e.err
}
