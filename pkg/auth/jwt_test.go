package auth

import (
	"testing"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *user.User {
	return &user.User{ID: 42, Username: "ana", Name: "Ana Souza", Role: user.RoleSeller}
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateToken_WrongKey(t *testing.T) {
	a, _ := NewJWTService("chave-a", time.Hour)
	b, _ := NewJWTService("chave-b", time.Hour)

	token, _, err := a.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.ValidateToken("nao.e.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, _, err = svc.RefreshToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	base := time.Now().Add(-30 * time.Minute)
	svc.now = func() time.Time { return base }

	token, firstExp, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	refreshed, newExp, err := svc.RefreshToken(token)
	require.NoError(t, err)
	assert.True(t, newExp.After(firstExp))

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}
