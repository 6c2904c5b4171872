package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "catalog-test"})

	token, jti, err := manager.GenerateAccessToken(42, "thandi@example.com", "Thandi", "landlord", 3)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "thandi@example.com", claims.Email)
	assert.Equal(t, "Thandi", claims.Name)
	assert.Equal(t, "landlord", claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateToken_Rejects(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "catalog-test"})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager(JWTConfig{Secret: "other-secret", Issuer: "catalog-test"})
		token, _, err := other.GenerateAccessToken(1, "a@example.com", "", "student", 0)
		require.NoError(t, err)
		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
		token, _, err := other.GenerateAccessToken(1, "a@example.com", "", "student", 0)
		require.NoError(t, err)
		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "catalog-test", Expiry: -time.Minute})
		token, _, err := short.GenerateAccessToken(1, "a@example.com", "", "student", 0)
		require.NoError(t, err)
		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("refresh token", func(t *testing.T) {
		claims := Claims{
			UserID:    1,
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "catalog-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
