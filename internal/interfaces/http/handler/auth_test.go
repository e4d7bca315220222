package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appidentity "github.com/jelectro/storefront/internal/application/identity"
	"github.com/jelectro/storefront/internal/domain/identity"
	"github.com/jelectro/storefront/internal/infrastructure/auth"
	"github.com/jelectro/storefront/internal/infrastructure/config"
	"github.com/jelectro/storefront/internal/interfaces/http/middleware"
)

// MockUserRepository implements identity.UserRepository for handler tests
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type authFixture struct {
	router   *gin.Engine
	userRepo *MockUserRepository
	sessions *auth.SessionService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := new(MockUserRepository)
	sessions := auth.NewSessionService(config.JWTConfig{
		Secret:     strings.Repeat("s", 32),
		Expiration: time.Hour,
		Issuer:     "jelectro-test",
	})
	authService := appidentity.NewAuthService(userRepo, sessions)
	h := NewAuthHandler(authService, config.CookieConfig{Path: "/", SameSite: "lax"})

	sessionAuth := middleware.SessionAuth(sessions)
	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", sessionAuth, h.Logout)
	router.GET("/auth/me", sessionAuth, h.Me)

	return &authFixture{router: router, userRepo: userRepo, sessions: sessions}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates account and sets cookies", func(t *testing.T) {
		f := newAuthFixture(t)

		f.userRepo.On("ExistsByUsername", mock.Anything, "budi").Return(false, nil)
		f.userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			jsonBody(t, gin.H{"username": "budi", "password": "rahasia123"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		cookies := w.Result().Cookies()

		session := findCookie(cookies, middleware.SessionCookieName)
		require.NotNil(t, session)
		assert.NotEmpty(t, session.Value)
		assert.True(t, session.HttpOnly)

		prefill := findCookie(cookies, middleware.LastUsernameCookieName)
		require.NotNil(t, prefill)
		assert.Equal(t, "budi", prefill.Value)
		assert.False(t, prefill.HttpOnly)

		claims, err := f.sessions.Validate(session.Value)
		require.NoError(t, err)
		assert.Equal(t, "budi", claims.Username)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("returns 409 when username is taken", func(t *testing.T) {
		f := newAuthFixture(t)

		f.userRepo.On("ExistsByUsername", mock.Anything, "budi").Return(true, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			jsonBody(t, gin.H{"username": "budi", "password": "rahasia123"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "USERNAME_TAKEN")
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns 400 for short password", func(t *testing.T) {
		f := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			jsonBody(t, gin.H{"username": "budi", "password": "abc"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("authenticates and sets cookies", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := identity.NewUser("budi", "rahasia123", identity.RoleUser)
		require.NoError(t, err)
		f.userRepo.On("FindByUsername", mock.Anything, "budi").Return(user, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, gin.H{"username": "budi", "password": "rahasia123"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, findCookie(w.Result().Cookies(), middleware.SessionCookieName))
		assert.NotNil(t, findCookie(w.Result().Cookies(), middleware.LastUsernameCookieName))
	})

	t.Run("returns 401 for wrong password", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := identity.NewUser("budi", "rahasia123", identity.RoleUser)
		require.NoError(t, err)
		f.userRepo.On("FindByUsername", mock.Anything, "budi").Return(user, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, gin.H{"username": "budi", "password": "salah-total"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTHENTICATION_FAILED")
		assert.Nil(t, findCookie(w.Result().Cookies(), middleware.SessionCookieName))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	f := newAuthFixture(t)

	session, err := f.sessions.Generate(uuid.New(), "budi", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cleared := findCookie(w.Result().Cookies(), middleware.SessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	prefill := findCookie(w.Result().Cookies(), middleware.LastUsernameCookieName)
	require.NotNil(t, prefill)
	assert.Empty(t, prefill.Value)
	assert.Less(t, prefill.MaxAge, 0)
}

func TestAuthHandler_Me(t *testing.T) {
	f := newAuthFixture(t)

	user, err := identity.NewUser("budi", "rahasia123", identity.RoleUser)
	require.NoError(t, err)
	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	session, err := f.sessions.Generate(user.ID, user.Username, string(user.Role))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "budi")
	assert.NotContains(t, w.Body.String(), "password")
}
