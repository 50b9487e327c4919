package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkondo/giveaway/pkg/cache"
)

// Session holds the authenticated identity attached to a bearer token.
type Session struct {
	UserID   int
	Username string
	Role     string
}

// SessionStore issues and resolves bearer tokens backed by a TTL cache.
// Tokens expire when the cache entry does; there is no refresh.
type SessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionStore(c cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

// Create issues a new opaque token for the given session.
func (s *SessionStore) Create(ctx context.Context, sess *Session) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, token, sess, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session, or false if unknown or expired.
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, bool) {
	v, ok := s.cache.Get(ctx, token)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	if !ok {
		return nil, false
	}
	return sess, true
}

// Delete removes a token. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, token)
}
