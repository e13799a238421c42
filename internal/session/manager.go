// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"context"
	"log/slog"
	"sync"
)

// Change is an identity transition: a user became authenticated or signed
// out. Changes are produced outside the package and consumed by Run.
type Change struct {
	// UserID is the identity the change is about.
	UserID string

	// SignedIn is true when the user became authenticated, false when the
	// identity went away.
	SignedIn bool
}

// Manager tracks one Session per authenticated user and reacts to identity
// changes by loading or dropping their favorites view.
type Manager struct {
	catalog     Catalog
	store       FavoriteStore
	randomCount int
	changes     <-chan Change

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. changes is the identity-change stream to
// consume in Run; it may be nil if Run is never called.
func NewManager(catalog Catalog, store FavoriteStore, randomCount int, changes <-chan Change) *Manager {
	return &Manager{
		catalog:     catalog,
		store:       store,
		randomCount: randomCount,
		changes:     changes,
		sessions:    map[string]*Session{},
	}
}

// Session returns the user's session, creating it and loading their
// favorites on first use. The manager's lock is not held across the load,
// so an unresponsive store only stalls that user's requests.
func (m *Manager) Session(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	m.mu.Lock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = newSession(userID, m.catalog, m.store, m.randomCount)
		m.sessions[userID] = sess
	}
	m.mu.Unlock()

	if err := sess.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// Active reports whether the user currently has a session. It does not
// create one.
func (m *Manager) Active(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Drop discards the user's session. The next request recreates it and
// reloads favorites from the store.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Run consumes identity changes until the context is canceled or the
// stream closes. Sign-ins warm the session so favorites are loaded before
// the first search; sign-outs clear the in-memory view.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-m.changes:
			if !ok {
				return
			}
			m.handleChange(ctx, change)
		}
	}
}

func (m *Manager) handleChange(ctx context.Context, change Change) {
	if !change.SignedIn {
		m.Drop(change.UserID)
		return
	}
	if _, err := m.Session(ctx, change.UserID); err != nil {
		slog.WarnContext(ctx, "session: warming session on sign-in", "userId", change.UserID, "error", err)
	}
}
