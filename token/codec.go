// Package token creates and verifies the signed credentials carried in
// the auth cookies. Access and refresh credentials are signed with
// distinct secrets so a leaked access secret cannot forge refresh
// credentials, and vice versa.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpiredCredential is returned when the embedded expiry has passed.
	ErrExpiredCredential = errors.New("credential expired")
	// ErrInvalidCredential covers bad signatures and malformed payloads.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Claims is the payload embedded in both credential kinds.
type Claims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed credentials.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewCodec creates a codec with the given secrets and lifetimes.
func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the codec's clock. Used by tests to simulate
// credential expiry without waiting.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// AccessTTL returns the access credential lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the refresh credential lifetime. The session store
// TTL mirrors this value.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess signs a short-lived access credential for the subject and
// session.
func (c *Codec) IssueAccess(userID, sessionID string) (string, error) {
	return c.issue(userID, sessionID, c.accessSecret, c.accessTTL)
}

// IssueRefresh signs a long-lived refresh credential for the subject
// and session.
func (c *Codec) IssueRefresh(userID, sessionID string) (string, error) {
	return c.issue(userID, sessionID, c.refreshSecret, c.refreshTTL)
}

func (c *Codec) issue(userID, sessionID string, secret []byte, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates an access credential and returns its claims.
func (c *Codec) VerifyAccess(credential string) (*Claims, error) {
	return c.verify(credential, c.accessSecret)
}

// VerifyRefresh validates a refresh credential and returns its claims.
func (c *Codec) VerifyRefresh(credential string) (*Claims, error) {
	return c.verify(credential, c.refreshSecret)
}

func (c *Codec) verify(credential string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrInvalidCredential
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}
