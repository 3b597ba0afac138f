package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielwillianfb/ecommerce/cache"
	"github.com/gabrielwillianfb/ecommerce/domain"
	"github.com/gabrielwillianfb/ecommerce/token"
)

type stubUserRepository struct {
	users map[string]*domain.User
}

func (s *stubUserRepository) CreateUser(context.Context, *domain.User) error { return nil }

func (s *stubUserRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepository) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepository) UpdateCart(context.Context, string, []domain.CartItem) error {
	return nil
}

type gateFixture struct {
	codec *token.Codec
	store *cache.MemorySessionStore
	users *stubUserRepository
	gate  echo.MiddlewareFunc
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	codec := token.NewCodec(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		15*time.Minute,
		7*24*time.Hour,
	)
	store := cache.NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	users := &stubUserRepository{users: map[string]*domain.User{}}
	return &gateFixture{
		codec: codec,
		store: store,
		users: users,
		gate:  RequireAuth(codec, store, users),
	}
}

func (f *gateFixture) serve(t *testing.T, accessToken string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	handlerRan := false
	e.GET("/protected", func(c echo.Context) error {
		handlerRan = true
		user, ok := UserFromContext(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, user)
	}, f.gate)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if accessToken != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessToken})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, handlerRan
}

func reasonCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestRequireAuthNoToken(t *testing.T) {
	f := newGateFixture(t)

	rec, ran := f.serve(t, "")
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeNoToken, reasonCode(t, rec))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	f := newGateFixture(t)

	past := time.Now().Add(-time.Hour)
	expiredCodec := token.NewCodec([]byte("access-secret"), nil, time.Minute, time.Minute).
		WithClock(func() time.Time { return past })
	expired, err := expiredCodec.IssueAccess("u1", "s1")
	require.NoError(t, err)

	rec, ran := f.serve(t, expired)
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeTokenExpired, reasonCode(t, rec))
}

func TestRequireAuthMalformedToken(t *testing.T) {
	f := newGateFixture(t)

	rec, ran := f.serve(t, "garbage")
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeTokenError, reasonCode(t, rec))
}

func TestRequireAuthRevokedSession(t *testing.T) {
	f := newGateFixture(t)

	// A valid credential whose session record does not exist: the token
	// outlived a revocation.
	access, err := f.codec.IssueAccess("u1", "s1")
	require.NoError(t, err)

	rec, ran := f.serve(t, access)
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeInvalidSession, reasonCode(t, rec))
}

func TestRequireAuthUserGone(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Put(ctx, &domain.Session{ID: "s1", UserID: "u1"}, time.Minute))
	access, err := f.codec.IssueAccess("u1", "s1")
	require.NoError(t, err)

	rec, ran := f.serve(t, access)
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUserNotFound, reasonCode(t, rec))
}

func TestRequireAuthSuccess(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	f.users.users["u1"] = &domain.User{ID: "u1", Name: "Jane", Role: domain.RoleCustomer}
	require.NoError(t, f.store.Put(ctx, &domain.Session{ID: "s1", UserID: "u1"}, time.Minute))
	access, err := f.codec.IssueAccess("u1", "s1")
	require.NoError(t, err)

	rec, ran := f.serve(t, access)
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	handler := RequireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func(user *domain.User) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(UserContextKey, user)
		}
		require.NoError(t, handler(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, run(nil))
	assert.Equal(t, http.StatusForbidden, run(&domain.User{ID: "u1", Role: domain.RoleCustomer}))
	assert.Equal(t, http.StatusOK, run(&domain.User{ID: "u2", Role: domain.RoleAdmin}))
}
