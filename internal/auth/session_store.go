package auth

import (
	"context"
	"time"

	"taskboard/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// SessionStoreInterface defines the interface for session revocation storage.
type SessionStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionStore tracks logged-out session tokens in Redis. Tokens stay
// self-contained; revocation entries live only until the token would have
// expired on its own.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Revoke marks a session token as logged out until its natural expiry.
// Revoking the same token twice is not an error.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedSessionKeyPrefix + tokenID
	// Store a simple marker
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsRevoked checks whether a session token has been logged out.
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedSessionKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil // Not revoked if redis is unavailable (fail safe)
	}
	return data != nil, nil
}
