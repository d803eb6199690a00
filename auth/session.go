// Package auth implements the wallet-signature login against the Helix API
// and the bearer session it produces. The upload and download pipelines only
// read sessions; mutation belongs to the Authenticator and the caller.
package auth

import (
	"sync"
	"time"
)

// DefaultSessionTTL is assumed when the verify endpoint does not report an
// expiry for the issued token.
const DefaultSessionTTL = 24 * time.Hour

// Session holds a bearer token and its expiry. Safe for concurrent use; the
// pipelines read it, the auth flow and explicit disconnects mutate it.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewSession creates a session from an already-obtained token.
func NewSession(token string, expiresAt time.Time) *Session {
	return &Session{token: token, expiresAt: expiresAt}
}

// Token returns the current bearer token, or "" if the session is empty.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the token expiry time.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// IsValid reports whether a token is present and not expired at now.
func (s *Session) IsValid(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && now.Before(s.expiresAt)
}

// Set replaces the session's token and expiry.
func (s *Session) Set(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
}

// Clear empties the session. Used on disconnect or detected expiry.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
