// Package kvstore provides the string key-value store used to persist study records
package kvstore

import (
	"context"
	"strings"
)

// Keys of the persisted records
const (
	KeyProgress  = "antigone_progress"
	KeyNotes     = "antigone_notes"
	KeyBookmarks = "antigone_bookmarks"
	KeySettings  = "antigone_settings"
	KeySession   = "antigone_auth"
	KeyStudents  = "antigone_students"
)

// Store is the interface that wraps the basic key-value operations.
//
// Every operation is synchronous: once it returns without error the change is visible to later reads.
// There are no transactions, callers doing read-modify-write on a record get last-writer-wins semantics.
type Store interface {
	// Method Get retrieve the value stored under "key".
	//
	// An absent key is not an error: "false" is returned together with an empty value.
	Get(ctx context.Context, key string) (string, bool, error)
	// Method Set stores "value" under "key", replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Method Remove deletes "key". Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
	// Method List retrieve all entries whose key starts with "prefix", ordered by key.
	//
	// An empty prefix lists the whole store.
	List(ctx context.Context, prefix string) ([]Entry, error)
}

// Entry is a single key-value pair
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type contextKey string

const scopeKey contextKey = "kvstoreScope"

// scopeSeparator separates the scope from the record key in scoped keys
const scopeSeparator = ":"

// WithScope returns a context carrying the key scope used by a Scoped store
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// ScopeFrom retrieves the key scope from context
func ScopeFrom(ctx context.Context) string {
	if scope, ok := ctx.Value(scopeKey).(string); ok {
		return scope
	}
	return ""
}

// ScopedKey returns the key under which "key" is stored for "scope"
func ScopedKey(scope, key string) string {
	if scope == "" {
		return key
	}
	return scope + scopeSeparator + key
}

// SplitScopedKey splits a stored key into its scope and record key.
// Keys without a scope return an empty scope.
func SplitScopedKey(stored string) (string, string) {
	scope, key, found := strings.Cut(stored, scopeSeparator)
	if !found {
		return "", stored
	}
	return scope, key
}
