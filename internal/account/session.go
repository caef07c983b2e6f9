// Package account holds the gateway's auth session: the current user, the
// bearer tokens sent to the backend, and their persistence across restarts.
package account

import (
	"fmt"
	"sync"

	"github.com/claude/hypertroq/internal/models"
)

// Session is the current authenticated identity. It implements the API
// client's token source, so a cleared session immediately stops
// authenticating outbound requests.
type Session struct {
	store TokenStore

	mu     sync.RWMutex
	tokens models.AuthTokens
	user   *models.User
}

// NewSession builds a session backed by store, restoring any tokens a
// previous run saved. store may be nil for a purely in-memory session.
func NewSession(store TokenStore) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	tokens, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("restoring credentials: %w", err)
	}
	if ok {
		s.tokens = tokens
	}
	return s, nil
}

// AccessToken returns the current bearer token, or "" when logged out.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

// Authenticated reports whether the session holds a token.
func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

// SetCredentials installs new tokens and persists them.
func (s *Session) SetCredentials(tokens models.AuthTokens) error {
	s.mu.Lock()
	s.tokens = tokens
	s.user = nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.Save(tokens); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// SetUser caches the profile fetched after login.
func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// User returns the cached profile, or nil if none was fetched yet.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Clear drops the tokens and the cached user, both in memory and in the
// store. Called on logout and when the backend rejects our token.
func (s *Session) Clear() {
	s.mu.Lock()
	s.tokens = models.AuthTokens{}
	s.user = nil
	s.mu.Unlock()

	if s.store != nil {
		// Best effort: a failed delete only means a stale token on disk.
		_ = s.store.Clear()
	}
}
