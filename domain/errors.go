package domain

import "errors"

// Sentinel errors shared across the storage and service layers. The
// HTTP layer maps these to status codes and machine-readable reason
// codes; none of them are retried server-side.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound means the session record is absent from the
	// store: expired, revoked, or never created.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCredentialMismatch means a presented refresh token did not
	// match the one stored for its session. Treated as reuse of a
	// superseded credential; the whole session chain is revoked.
	ErrCredentialMismatch = errors.New("refresh token does not match stored session")

	ErrProductNotFound = errors.New("product not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExpired   = errors.New("coupon expired")
)
