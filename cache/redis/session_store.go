// Package redis provides the Redis-backed session store and the
// featured-products cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gabrielwillianfb/ecommerce/cache"
	"github.com/gabrielwillianfb/ecommerce/domain"
)

const sessionKeyPrefix = "refresh_token"

// SessionStore implements cache.SessionStore on a Redis client. Records
// are stored as JSON under "refresh_token:<sessionID>" with a server-side
// TTL, so passive expiry needs no application code.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new [SessionStore] instance.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sessionID)
}

// Put implements cache.SessionStore.Put.
func (s *SessionStore) Put(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}
	return nil
}

// Get implements cache.SessionStore.Get.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	res, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(res), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.ID = sessionID

	return &session, nil
}

// Delete implements cache.SessionStore.Delete.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

var _ cache.SessionStore = (*SessionStore)(nil)
