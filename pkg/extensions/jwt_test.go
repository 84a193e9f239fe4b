// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the JWT auth provider

package extensions

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims tokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthProvider_ValidToken(t *testing.T) {
	provider := NewJWTAuthProvider("test-secret")
	token := signToken(t, "test-secret", tokenClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
		UserID:         "u1",
		Username:       "ada",
		Email:          "ada@example.com",
	})

	info, err := provider.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", info.UserID)
	assert.Equal(t, "ada", info.Username)
	assert.Equal(t, "ada@example.com", info.Email)
}

func TestJWTAuthProvider_Rejections(t *testing.T) {
	provider := NewJWTAuthProvider("test-secret")
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		_, err := provider.Validate(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := provider.Validate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", tokenClaims{
			StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
			UserID:         "u1",
		})
		_, err := provider.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", tokenClaims{
			StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
			UserID:         "u1",
		})
		_, err := provider.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := signToken(t, "test-secret", tokenClaims{
			StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
		})
		_, err := provider.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNopAuthProvider(t *testing.T) {
	provider := &NopAuthProvider{}
	info, err := provider.Validate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "local-user", info.UserID)
}
