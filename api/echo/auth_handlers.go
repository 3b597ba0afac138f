//nolint:varnamelen
package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/middleware"
	"github.com/gabrielwillianfb/ecommerce/services"
	"github.com/gabrielwillianfb/ecommerce/token"
)

// AuthAPI serves the session lifecycle endpoints.
type AuthAPI struct {
	users    *services.UserService
	sessions *services.SessionManager
	cookies  *CookieWriter
}

// NewAuthAPI initializes the auth API.
func NewAuthAPI(users *services.UserService, sessions *services.SessionManager, cookies *CookieWriter) *AuthAPI {
	return &AuthAPI{
		users:    users,
		sessions: sessions,
		cookies:  cookies,
	}
}

// RegisterRoutes registers the auth routes. gate protects the profile
// endpoint; the rest are reachable without an access credential.
func (a *AuthAPI) RegisterRoutes(e *echo.Echo, gate echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/signup", a.SignupHandler)
	g.POST("/login", a.LoginHandler)
	g.POST("/logout", a.LogoutHandler)
	g.POST("/refresh-token", a.RefreshTokenHandler)
	g.GET("/profile", a.ProfileHandler, gate)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupHandler creates a new account and immediately authenticates it:
// a session is created and both credential cookies are set.
func (a *AuthAPI) SignupHandler(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, email and password are required"})
	}

	ctx := c.Request().Context()

	user, err := a.users.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "user already exists"})
		}
		log.Error().Err(err).Msg("signup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	pair, err := a.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create session on signup")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	a.cookies.SetAuthCookies(c, pair)

	return c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler verifies credentials and creates a session.
func (a *AuthAPI) LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	ctx := c.Request().Context()

	user, err := a.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid email or password"})
		}
		log.Error().Err(err).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	pair, err := a.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create session on login")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	a.cookies.SetAuthCookies(c, pair)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler revokes the session named by the refresh cookie and
// clears both cookies. Revoking an already-revoked session succeeds.
func (a *AuthAPI) LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no token to revoke"})
	}

	if err := a.sessions.RevokeSession(c.Request().Context(), cookie.Value); err != nil {
		if errors.Is(err, token.ErrInvalidCredential) || errors.Is(err, token.ErrExpiredCredential) {
			a.cookies.ClearAuthCookies(c)
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid token"})
		}
		log.Error().Err(err).Msg("logout failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	a.cookies.ClearAuthCookies(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
}

// RefreshTokenHandler rotates the session named by the refresh cookie
// and sets a fresh credential pair. All rotation failures map to 401.
func (a *AuthAPI) RefreshTokenHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "no refresh token provided"})
	}

	ctx := c.Request().Context()

	userID, pair, err := a.sessions.RotateSession(ctx, cookie.Value)
	if err != nil {
		return a.refreshError(c, err)
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		// The subject vanished between rotation and lookup. Kill the
		// fresh session too, nothing can use it.
		if revokeErr := a.sessions.RevokeSession(ctx, pair.RefreshToken); revokeErr != nil {
			log.Warn().Err(revokeErr).Msg("failed to revoke session for missing user")
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "user not found"})
	}

	a.cookies.SetAuthCookies(c, pair)
	return c.JSON(http.StatusOK, user)
}

func (a *AuthAPI) refreshError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredCredential):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "token expired"})
	case errors.Is(err, token.ErrInvalidCredential), errors.Is(err, domain.ErrCredentialMismatch):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
	default:
		log.Error().Err(err).Msg("refresh token failed")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "failed to process token"})
	}
}

// ProfileHandler returns the authenticated principal.
func (a *AuthAPI) ProfileHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusOK, user)
}
