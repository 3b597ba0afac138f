package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gabrielwillianfb/ecommerce/middleware"
	"github.com/gabrielwillianfb/ecommerce/services"
)

// CookieWriter sets and clears the auth cookie pair. Both cookies are
// HttpOnly, SameSite=Strict, path /, and Secure in production.
type CookieWriter struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

// NewCookieWriter creates a CookieWriter with the credential lifetimes
// as cookie max-ages.
func NewCookieWriter(accessTTL, refreshTTL time.Duration, secure bool) *CookieWriter {
	return &CookieWriter{
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		secure:     secure,
	}
}

// SetAuthCookies writes both credential cookies on the response.
func (w *CookieWriter) SetAuthCookies(c echo.Context, pair *services.TokenPair) {
	c.SetCookie(w.cookie(middleware.AccessTokenCookie, pair.AccessToken, w.accessTTL))
	c.SetCookie(w.cookie(middleware.RefreshTokenCookie, pair.RefreshToken, w.refreshTTL))
}

// ClearAuthCookies expires both credential cookies.
func (w *CookieWriter) ClearAuthCookies(c echo.Context) {
	c.SetCookie(w.cookie(middleware.AccessTokenCookie, "", -time.Second))
	c.SetCookie(w.cookie(middleware.RefreshTokenCookie, "", -time.Second))
}

func (w *CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
