package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/Livia-1212/user-management-final/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Email: "user@example.com",
		Role:  domain.RoleAuthenticated,
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Minute, time.Hour, "test")
	assert.Error(t, err)
}

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret", 15*time.Minute, 24*time.Hour, "user-management")
	require.NoError(t, err)

	user := testUser()
	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	access, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, user.Email, access.Email)
	assert.Equal(t, domain.RoleAuthenticated, access.Role)
	assert.Equal(t, "access", access.TokenType)
	assert.Equal(t, "user-management", access.Issuer)

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refresh.UserID)
	assert.Equal(t, "refresh", refresh.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-a", time.Minute, time.Hour, "test")
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", time.Minute, time.Hour, "test")
	require.NoError(t, err)

	pair, err := issuer.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", -time.Minute, time.Hour, "test")
	require.NoError(t, err)

	pair, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Minute, time.Hour, "test")
	require.NoError(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
