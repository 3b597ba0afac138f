package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielwillianfb/ecommerce/cache"
	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/token"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *token.Codec, cache.SessionStore) {
	t.Helper()
	codec := token.NewCodec(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		15*time.Minute,
		7*24*time.Hour,
	)
	store := cache.NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewSessionManager(codec, store), codec, store
}

func TestCreateSession(t *testing.T) {
	manager, codec, store := newTestSessionManager(t)
	ctx := context.Background()

	pair, err := manager.CreateSession(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := codec.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	// Both credentials name the same subject and session.
	assert.Equal(t, "user-1", accessClaims.UserID)
	assert.Equal(t, accessClaims.SessionID, refreshClaims.SessionID)

	session, err := store.Get(ctx, refreshClaims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, pair.RefreshToken, session.RefreshToken)
}

func TestRotateSession(t *testing.T) {
	manager, codec, store := newTestSessionManager(t)
	ctx := context.Background()

	pair, err := manager.CreateSession(ctx, "user-1")
	require.NoError(t, err)
	oldClaims, err := codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	userID, fresh, err := manager.RotateSession(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	newClaims, err := codec.VerifyRefresh(fresh.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldClaims.SessionID, newClaims.SessionID)

	// The old record is gone, the new one is live.
	_, err = store.Get(ctx, oldClaims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, newClaims.SessionID)
	assert.NoError(t, err)
}

func TestRotateSessionIsSingleUse(t *testing.T) {
	manager, _, _ := newTestSessionManager(t)
	ctx := context.Background()

	pair, err := manager.CreateSession(ctx, "user-1")
	require.NoError(t, err)

	_, _, err = manager.RotateSession(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// The consumed credential's session record no longer exists.
	_, _, err = manager.RotateSession(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRotateSessionMismatchRevokesSession(t *testing.T) {
	manager, codec, store := newTestSessionManager(t)
	ctx := context.Background()

	pair, err := manager.CreateSession(ctx, "user-1")
	require.NoError(t, err)
	claims, err := codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	// A verifiable credential for the same session that differs from the
	// stored one, as a replayed predecessor would. Backdating the clock
	// keeps the issued-at claim, and so the whole credential, distinct.
	staleCodec := token.NewCodec(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		15*time.Minute,
		7*24*time.Hour,
	).WithClock(func() time.Time { return time.Now().Add(-time.Minute) })
	stale, err := staleCodec.IssueRefresh("user-1", claims.SessionID)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, stale)

	_, _, err = manager.RotateSession(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)

	// The whole session chain is dead, the current credential included.
	_, err = store.Get(ctx, claims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = manager.RotateSession(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRotateSessionRejectsGarbage(t *testing.T) {
	manager, _, _ := newTestSessionManager(t)

	_, _, err := manager.RotateSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, token.ErrInvalidCredential)
}

func TestRevokeSession(t *testing.T) {
	manager, codec, store := newTestSessionManager(t)
	ctx := context.Background()

	pair, err := manager.CreateSession(ctx, "user-1")
	require.NoError(t, err)
	claims, err := codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, manager.RevokeSession(ctx, pair.RefreshToken))
	_, err = store.Get(ctx, claims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Revocation is idempotent.
	assert.NoError(t, manager.RevokeSession(ctx, pair.RefreshToken))
}
