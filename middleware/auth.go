// Package middleware holds the authentication gate protecting the
// storefront routes.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/cache"
	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/token"
)

// Cookie names shared with the auth handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// UserContextKey is the echo context key holding the resolved user.
const UserContextKey = "auth-user"

// Machine-readable reason codes attached to 401 responses. Clients use
// CodeNoToken to skip the refresh attempt and CodeTokenExpired to
// trigger it; the rest surface directly.
const (
	CodeNoToken        = "NO_TOKEN"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeTokenError     = "TOKEN_ERROR"
	CodeInvalidSession = "INVALID_SESSION"
	CodeUserNotFound   = "USER_NOT_FOUND"
)

// RequireAuth resolves the access cookie into an authenticated user or
// rejects the request with a typed 401. The session record is checked
// on every request, so revoking a session invalidates outstanding
// access credentials before their own expiry.
func RequireAuth(codec *token.Codec, sessions cache.SessionStore, users domain.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "unauthorized - no access token provided",
					"code":    CodeNoToken,
				})
			}

			claims, err := codec.VerifyAccess(cookie.Value)
			if err != nil {
				if errors.Is(err, token.ErrExpiredCredential) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"message": "access token expired",
						"code":    CodeTokenExpired,
					})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "unauthorized - failed to process access token",
					"code":    CodeTokenError,
				})
			}

			ctx := c.Request().Context()

			if _, err := sessions.Get(ctx, claims.SessionID); err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"message": "invalid session",
						"code":    CodeInvalidSession,
					})
				}
				log.Error().Err(err).Str("session_id", claims.SessionID).Msg("session store lookup failed")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "unauthorized - failed to process access token",
					"code":    CodeTokenError,
				})
			}

			user, err := users.GetUserByID(ctx, claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "user not found",
					"code":    CodeUserNotFound,
				})
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose resolved user is not an admin.
// It reads only the user already attached by RequireAuth; no store
// access happens here.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c)
		if !ok || !user.IsAdmin() {
			return c.JSON(http.StatusForbidden, echo.Map{
				"message": "access denied - admins only",
			})
		}
		return next(c)
	}
}

// UserFromContext returns the user attached by RequireAuth.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok
}
