package domain

import "time"

// Session binds a session identifier to a subject and the currently
// valid refresh token for that session. It lives in the session store
// under a TTL equal to the refresh token's validity window; a session
// is only as alive as its store record.
type Session struct {
	ID           string    `json:"-"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}
