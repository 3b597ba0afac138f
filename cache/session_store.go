// Package cache holds the TTL-keyed session store contract and its
// in-memory implementation. The Redis-backed implementation lives in
// the redis subpackage.
package cache

import (
	"context"
	"time"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

// SessionStore is a TTL-keyed key-value store for session records. The
// only guarantee is per-key atomicity; the session manager sequences
// multi-key operations itself.
type SessionStore interface {
	// Put stores the session keyed by its ID for the given TTL,
	// replacing any existing record.
	Put(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// Get returns the session record, or domain.ErrSessionNotFound if
	// absent or expired.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	// Delete removes the record. Deleting an absent key is not an error.
	Delete(ctx context.Context, sessionID string) error
}
