package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal in-memory stand-ins so the real auth service can back the resolvers.

type memUserRepo struct {
	users map[string]*repository.User
}

func (r *memUserRepo) Create(_ context.Context, user *repository.User) error {
	user.ID = uuid.New().String()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []string) ([]*repository.User, error) {
	var out []*repository.User
	for _, id := range ids {
		if u := r.users[id]; u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*repository.User, error) {
	var out []*repository.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *repository.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type memSessionStore struct {
	sessions map[string]service.Session
}

func (s *memSessionStore) SetSession(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.sessions[key] = *(value.(*service.Session))
	return nil
}

func (s *memSessionStore) GetSession(_ context.Context, key string, dest interface{}) error {
	session, ok := s.sessions[key]
	if !ok {
		return service.ErrInvalidToken
	}
	*dest.(*service.Session) = session
	return nil
}

func (s *memSessionStore) DeleteSession(_ context.Context, key string) error {
	delete(s.sessions, key)
	return nil
}

type authFixture struct {
	cfg    *config.Config
	auth   service.AuthService
	router *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     24,
		SessionTTL:    168,
		SessionCookie: "planr_session",
		TokenCookie:   "planr_token",
	}
	auth := service.NewAuthService(cfg, &memUserRepo{users: map[string]*repository.User{}}, &memSessionStore{sessions: map[string]service.Session{}})

	r := gin.New()
	protected := r.Group("/")
	protected.Use(AuthMiddleware(NewResolvers(cfg, auth)...))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	protected.POST("/write", RequireFullAccess(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return &authFixture{cfg: cfg, auth: auth, router: r}
}

func (f *authFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRequestWithoutCredentialsIsRejected(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerTokenAuthenticates(t *testing.T) {
	f := newAuthFixture(t)

	user, creds, err := f.auth.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestTokenCookieAuthenticates(t *testing.T) {
	f := newAuthFixture(t)

	user, creds, err := f.auth.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: f.cfg.TokenCookie, Value: creds.Token})
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	f := newAuthFixture(t)

	user, creds, err := f.auth.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, creds.SessionID)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: f.cfg.SessionCookie, Value: creds.SessionID})
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestSessionTakesPriorityOverToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sessionUser, sessionCreds, err := f.auth.Register(ctx, "Session User", "session@planr.dev", "password123")
	require.NoError(t, err)
	_, tokenCreds, err := f.auth.Register(ctx, "Token User", "token@planr.dev", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: f.cfg.SessionCookie, Value: sessionCreds.SessionID})
	req.AddCookie(&http.Cookie{Name: f.cfg.TokenCookie, Value: tokenCreds.Token})
	w := f.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sessionUser.ID)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuestCanReadButNotWrite(t *testing.T) {
	f := newAuthFixture(t)

	_, creds, err := f.auth.LoginAsGuest(context.Background())
	require.NoError(t, err)

	read := httptest.NewRequest(http.MethodGet, "/me", nil)
	read.Header.Set("Authorization", "Bearer "+creds.Token)
	assert.Equal(t, http.StatusOK, f.do(read).Code)

	write := httptest.NewRequest(http.MethodPost, "/write", nil)
	write.Header.Set("Authorization", "Bearer "+creds.Token)
	assert.Equal(t, http.StatusForbidden, f.do(write).Code)
}

func TestRegisteredUserCanWrite(t *testing.T) {
	f := newAuthFixture(t)

	_, creds, err := f.auth.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)

	write := httptest.NewRequest(http.MethodPost, "/write", nil)
	write.Header.Set("Authorization", "Bearer "+creds.Token)
	assert.Equal(t, http.StatusOK, f.do(write).Code)
}
