package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/cache"
	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/token"
)

// TokenPair is the credential pair handed to the client after login,
// signup, or rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionManager orchestrates issuance, rotation, and revocation of
// session state, combining the token codec and the session store.
type SessionManager struct {
	codec *token.Codec
	store cache.SessionStore
}

// NewSessionManager creates a new SessionManager.
func NewSessionManager(codec *token.Codec, store cache.SessionStore) *SessionManager {
	return &SessionManager{codec: codec, store: store}
}

// CreateSession mints a new session for the subject: a fresh session ID,
// an access/refresh credential pair bound to it, and a store record
// whose TTL mirrors the refresh credential's lifetime.
func (m *SessionManager) CreateSession(ctx context.Context, userID string) (*TokenPair, error) {
	sessionID := uuid.NewString()

	accessToken, err := m.codec.IssueAccess(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := m.codec.IssueRefresh(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	session := &domain.Session{
		ID:           sessionID,
		UserID:       userID,
		RefreshToken: refreshToken,
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.store.Put(ctx, session, m.codec.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RotateSession exchanges a valid refresh credential for a brand-new
// session. The presented credential must verify, its session record
// must exist, and the stored refresh token must match it byte for byte.
// A mismatch means a superseded credential was replayed: the record is
// deleted so the whole chain dies, and domain.ErrCredentialMismatch is
// returned. On success the new session is stored before the old record
// is removed, so a crash mid-rotation leaves a duplicate valid session
// rather than a signed-out user. Returns the subject ID with the pair.
func (m *SessionManager) RotateSession(ctx context.Context, refreshToken string) (string, *TokenPair, error) {
	claims, err := m.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return "", nil, err
	}

	session, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return "", nil, err
	}

	if session.RefreshToken != refreshToken {
		log.Warn().
			Str("session_id", claims.SessionID).
			Msg("refresh token reuse detected, revoking session")
		if delErr := m.store.Delete(ctx, claims.SessionID); delErr != nil {
			log.Error().Err(delErr).Str("session_id", claims.SessionID).
				Msg("failed to revoke session after token mismatch")
		}
		return "", nil, domain.ErrCredentialMismatch
	}

	pair, err := m.CreateSession(ctx, session.UserID)
	if err != nil {
		return "", nil, err
	}

	if err := m.store.Delete(ctx, claims.SessionID); err != nil {
		// The replacement session is already durable; the stale record
		// will fall out of the store when its TTL elapses.
		log.Warn().Err(err).Str("session_id", claims.SessionID).
			Msg("failed to delete rotated session")
	}

	return session.UserID, pair, nil
}

// RevokeSession deletes the session bound to the presented refresh
// credential. Revoking an already-absent session is not an error, so
// logout is idempotent.
func (m *SessionManager) RevokeSession(ctx context.Context, refreshToken string) error {
	claims, err := m.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
