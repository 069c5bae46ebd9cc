package service

import (
	"context"
	"testing"

	"github.com/encikiz/planr-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  24,
		SessionTTL: 168,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewAuthService(testConfig(), userRepo, sessions)
	ctx := context.Background()

	user, creds, err := svc.Register(ctx, "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, creds.Token)
	assert.NotEmpty(t, creds.SessionID)
	// Password is never stored in the clear
	assert.NotEqual(t, "password123", *user.PasswordHash)

	loggedIn, loginCreds, err := svc.Login(ctx, "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginCreds.Token)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepoWithUser(t), nil)

	_, _, err := svc.Register(context.Background(), "Imposter", "hafiz@planr.dev", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
}

func newFakeUserRepoWithUser(t *testing.T) *fakeUserRepo {
	t.Helper()
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)
	_, _, err := svc.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	return repo
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepoWithUser(t), nil)

	_, _, err := svc.Login(context.Background(), "hafiz@planr.dev", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), "ghost@planr.dev", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	user, creds, err := svc.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)

	token, err := svc.ValidateToken(creds.Token)
	require.NoError(t, err)

	userID, isGuest, err := svc.CallerFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.False(t, isGuest)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	other := testConfig()
	other.JWTSecret = "different-secret"
	forger := NewAuthService(other, newFakeUserRepo(), nil)
	_, creds, err := forger.Register(context.Background(), "Forger", "forger@planr.dev", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(creds.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGuestLoginIsMarkedGuest(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	user, creds, err := svc.LoginAsGuest(context.Background())
	require.NoError(t, err)
	assert.True(t, user.IsGuest)

	token, err := svc.ValidateToken(creds.Token)
	require.NoError(t, err)
	_, isGuest, err := svc.CallerFromToken(token)
	require.NoError(t, err)
	assert.True(t, isGuest)
}

func TestSessionLifecycle(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := NewAuthService(testConfig(), newFakeUserRepo(), sessions)
	ctx := context.Background()

	user, creds, err := svc.Register(ctx, "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, creds.SessionID)

	session, err := svc.ResolveSession(ctx, creds.SessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.False(t, session.IsGuest)

	require.NoError(t, svc.Logout(ctx, creds.SessionID))

	_, err = svc.ResolveSession(ctx, creds.SessionID)
	assert.Error(t, err)
}

func TestLoginWithoutSessionStoreStillIssuesToken(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	_, creds, err := svc.Register(context.Background(), "Hafiz", "hafiz@planr.dev", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Token)
	assert.Empty(t, creds.SessionID)
}
