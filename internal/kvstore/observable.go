package kvstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Change describes one successful write to an Observable store
type Change struct {
	Scope   string    `json:"scope,omitempty"`
	Key     string    `json:"key"`
	Value   string    `json:"value,omitempty"`
	Deleted bool      `json:"deleted"`
	At      time.Time `json:"at"`
}

// Observable wraps a Store and notifies subscribers of every successful Set and Remove.
// Listeners are called synchronously, in subscription order, before the write returns.
type Observable struct {
	store Store
	now   func() time.Time

	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]func(Change)
}

// NewObservable creates an observable view of "store"
func NewObservable(store Store) *Observable {
	return &Observable{
		store:       store,
		now:         time.Now,
		subscribers: make(map[uint64]func(Change)),
	}
}

// Subscribe registers a change listener and returns the function removing it.
// Calling the returned function more than once is safe.
func (o *Observable) Subscribe(fn func(Change)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subscribers[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subscribers, id)
			o.mu.Unlock()
		})
	}
}

func (o *Observable) Get(ctx context.Context, key string) (string, bool, error) {
	return o.store.Get(ctx, key)
}

func (o *Observable) List(ctx context.Context, prefix string) ([]Entry, error) {
	return o.store.List(ctx, prefix)
}

func (o *Observable) Set(ctx context.Context, key, value string) error {
	if err := o.store.Set(ctx, key, value); err != nil {
		return err
	}
	o.publish(Change{
		Scope: ScopeFrom(ctx),
		Key:   key,
		Value: value,
		At:    o.now(),
	})
	return nil
}

func (o *Observable) Remove(ctx context.Context, key string) error {
	if err := o.store.Remove(ctx, key); err != nil {
		return err
	}
	o.publish(Change{
		Scope:   ScopeFrom(ctx),
		Key:     key,
		Deleted: true,
		At:      o.now(),
	})
	return nil
}

func (o *Observable) publish(change Change) {
	o.mu.RLock()
	ids := make([]uint64, 0, len(o.subscribers))
	for id := range o.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	listeners := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, o.subscribers[id])
	}
	o.mu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}
