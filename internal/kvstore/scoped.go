package kvstore

import (
	"context"
	"strings"
)

// Scoped wraps a Store so that every key is prefixed with the scope carried by the context.
// Each scope sees an isolated key space, a context without scope sees the unprefixed keys.
type Scoped struct {
	store Store
}

// NewScoped creates a scope-aware view of "store"
func NewScoped(store Store) *Scoped {
	return &Scoped{store: store}
}

func (s *Scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, ScopedKey(ScopeFrom(ctx), key))
}

func (s *Scoped) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, ScopedKey(ScopeFrom(ctx), key), value)
}

func (s *Scoped) Remove(ctx context.Context, key string) error {
	return s.store.Remove(ctx, ScopedKey(ScopeFrom(ctx), key))
}

// List returns the entries of the context scope with the scope prefix stripped from their keys
func (s *Scoped) List(ctx context.Context, prefix string) ([]Entry, error) {
	scope := ScopeFrom(ctx)
	entries, err := s.store.List(ctx, ScopedKey(scope, prefix))
	if err != nil {
		return nil, err
	}
	if scope == "" {
		return entries, nil
	}

	scopePrefix := ScopedKey(scope, "")
	for i := range entries {
		entries[i].Key = strings.TrimPrefix(entries[i].Key, scopePrefix)
	}
	return entries, nil
}
