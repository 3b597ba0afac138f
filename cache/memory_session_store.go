package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// MemorySessionStore implements SessionStore using ttlcache. Used in
// tests and single-node development runs.
type MemorySessionStore struct {
	cache *ttlcache.Cache[string, *domain.Session]
}

// NewMemorySessionStore creates an in-memory session store with
// automatic expiry cleanup.
func NewMemorySessionStore() *MemorySessionStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, *domain.Session](),
	)

	// Start the cleanup process
	go cache.Start()

	return &MemorySessionStore{cache: cache}
}

// Put implements SessionStore.Put.
func (s *MemorySessionStore) Put(_ context.Context, session *domain.Session, ttl time.Duration) error {
	s.cache.Set(session.ID, session, ttl)
	return nil
}

// Get implements SessionStore.Get.
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	item := s.cache.Get(sessionID)
	if item == nil {
		return nil, domain.ErrSessionNotFound
	}
	return item.Value(), nil
}

// Delete implements SessionStore.Delete.
func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemorySessionStore) Close() error {
	s.cache.Stop()
	return nil
}
