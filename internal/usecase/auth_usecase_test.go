package usecase

import (
	"context"
	"testing"
	"time"

	"autodominio-api/config"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/service"
	"autodominio-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*store, AuthUsecase, *jwt.JWTService) {
	t.Helper()
	s := newStore()
	db, _ := newMockDB(t)
	log := newTestLogger()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	audit := service.NewAuditService(log, fakeAuditRepo{s})
	return s, NewAuthUsecase(db, log, fakeUserRepo{s}, audit, jwtService, service.NewMemoryTokenStore()), jwtService
}

func addUserWithPassword(t *testing.T, s *store, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := s.addUser(entity.RoleStudent)
	s.mu.Lock()
	s.users[user.ID].Password = string(hash)
	s.mu.Unlock()
	return user
}

func TestLoginAndRefreshRotation(t *testing.T) {
	s, auth, jwtService := newAuthFixture(t)
	user := addUserWithPassword(t, s, "secret123")

	_, err := auth.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := auth.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)

	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleStudent), claims.Role)

	refreshed, err := auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	s, auth, jwtService := newAuthFixture(t)
	user := addUserWithPassword(t, s, "secret123")

	tokens, err := auth.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"})
	require.NoError(t, err)
	access, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), user.ID, access.TokenID, &dto.LogoutRequest{RefreshToken: tokens.RefreshToken}))

	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.Contains(t, s.auditActions(), entity.AuditActionUserLogout)
}
