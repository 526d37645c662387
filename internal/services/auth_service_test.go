package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quipapp/quip-backend/internal/config"
	"github.com/quipapp/quip-backend/internal/dto"
	"github.com/quipapp/quip-backend/internal/models"
	"github.com/quipapp/quip-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*AuthService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	return NewAuthService(st, cfg), st
}

func register(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{
		Name:     "Alice",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svc, st := newTestService()

	resp := register(t, svc, "alice@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "peers", resp.User.FriendLevel)

	// User and refresh token landed in the store
	user, err := st.UserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	_, err = st.RefreshTokenByHash(hashToken(resp.RefreshToken))
	require.NoError(t, err)

	login, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, login.User.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "alice@example.com")

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Other", Email: "alice@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, st := newTestService()

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "short",
	})
	require.Error(t, err)

	_, err = st.UserByEmail("alice@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "alice@example.com")

	_, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, st := newTestService()
	resp := register(t, svc, "alice@example.com")

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The consumed token is gone, the new one is live
	_, err = st.RefreshTokenByHash(hashToken(resp.RefreshToken))
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRemovesExpiredToken(t *testing.T) {
	svc, st := newTestService()
	resp := register(t, svc, "alice@example.com")

	expired := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    resp.User.ID,
		TokenHash: hashToken("stale-token"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	st.StageInsert(expired)
	require.NoError(t, st.Commit())

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "stale-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = st.RefreshTokenByHash(expired.TokenHash)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newTestService()
	resp := register(t, svc, "alice@example.com")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Repeated logout is a no-op
	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))
}
