// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the auth middleware

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianExchange/pkg/extensions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// rejectingProvider fails every validation.
type rejectingProvider struct{}

func (rejectingProvider) Validate(context.Context, string) (*extensions.AuthInfo, error) {
	return nil, extensions.ErrInvalidToken
}

// echoProvider returns the token as the user id, so tests can see what
// the middleware extracted from the header.
type echoProvider struct{}

func (echoProvider) Validate(_ context.Context, token string) (*extensions.AuthInfo, error) {
	if token == "" {
		return nil, extensions.ErrInvalidToken
	}
	return &extensions.AuthInfo{UserID: token}, nil
}

func newAuthRouter(provider extensions.AuthProvider) *gin.Engine {
	router := gin.New()
	router.GET("/protected", RequireAuth(provider), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	return router
}

func TestRequireAuth_NopProviderAllowsAll(t *testing.T) {
	router := newAuthRouter(&extensions.NopAuthProvider{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "local-user")
}

func TestRequireAuth_RejectsInvalidToken(t *testing.T) {
	router := newAuthRouter(rejectingProvider{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAuth_BearerExtraction(t *testing.T) {
	router := newAuthRouter(echoProvider{})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer prefix", "Bearer tok-123", "tok-123"},
		{"lowercase prefix", "bearer tok-123", "tok-123"},
		{"bare token", "tok-123", "tok-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestCurrentUser_NilWithoutMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/open", func(c *gin.Context) {
		assert.Nil(t, CurrentUser(c))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/open", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
