// Package session holds the authentication state of one device
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

// Authenticator is the interface that wraps the auth operations the session context relies on
type Authenticator interface {
	Login(ctx context.Context, username, password string) (bool, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
}

// State is a snapshot of the session
type State struct {
	Loading       bool         `json:"loading"`
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

// Context tracks the session of a device and notifies listeners on every change.
// A new Context is loading until Init completes.
type Context struct {
	auth   Authenticator
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	nextID    uint64
	listeners map[uint64]func(State)
}

// New creates a session context in the loading state
func New(auth Authenticator, logger *zap.Logger) *Context {
	return &Context{
		auth:      auth,
		logger:    logger,
		state:     State{Loading: true},
		listeners: make(map[uint64]func(State)),
	}
}

// State returns the current state
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Init reads the persisted session once and leaves the loading state.
// On error the context still leaves the loading state, as logged out.
func (c *Context) Init(ctx context.Context) (State, error) {
	authenticated, err := c.auth.IsAuthenticated(ctx)
	if err != nil {
		c.set(State{})
		return c.State(), fmt.Errorf("failed to restore session: %w", err)
	}

	var user *models.User
	if authenticated {
		user, err = c.auth.GetCurrentUser(ctx)
		if err != nil {
			c.set(State{})
			return c.State(), fmt.Errorf("failed to restore session: %w", err)
		}
	}

	c.set(State{Authenticated: authenticated, User: user})
	return c.State(), nil
}

// Login authenticates and, on success, moves to the logged in state
func (c *Context) Login(ctx context.Context, username, password string) (bool, error) {
	ok, err := c.auth.Login(ctx, username, password)
	if err != nil || !ok {
		return false, err
	}

	user, err := c.auth.GetCurrentUser(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}

	c.set(State{Authenticated: true, User: user})
	return true, nil
}

// Logout clears the persisted session and moves to the logged out state
func (c *Context) Logout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}
	c.set(State{})
	return nil
}

// Subscribe registers "fn" to be called with the new state after every change.
// The returned function removes the listener and may be called more than once.
func (c *Context) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Context) set(state State) {
	c.mu.Lock()
	c.state = state
	listeners := make([]func(State), 0, len(c.listeners))
	for id := uint64(0); id < c.nextID; id++ {
		if fn, ok := c.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	c.mu.Unlock()

	c.logger.Debug("session state changed", zap.Bool("authenticated", state.Authenticated))
	for _, fn := range listeners {
		fn(state)
	}
}
