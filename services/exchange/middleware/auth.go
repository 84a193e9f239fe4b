// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware carries the gin middleware of the exchange service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianExchange/pkg/extensions"
)

// authInfoKey is the gin context key the verified identity is stored
// under.
const authInfoKey = "authInfo"

// RequireAuth validates the request's bearer token via the configured
// AuthProvider and stores the identity in the context. Requests with a
// missing or invalid token are rejected with 401. Note that the no-op
// provider accepts empty tokens, so local deployments pass through.
func RequireAuth(provider extensions.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := provider.Validate(c.Request.Context(), bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		c.Set(authInfoKey, info)
		c.Next()
	}
}

// CurrentUser returns the identity stored by RequireAuth, or nil when
// the request did not pass through it.
func CurrentUser(c *gin.Context) *extensions.AuthInfo {
	v, ok := c.Get(authInfoKey)
	if !ok {
		return nil
	}
	info, ok := v.(*extensions.AuthInfo)
	if !ok {
		return nil
	}
	return info
}

// bearerToken extracts the token from the Authorization header. A bare
// token without the Bearer prefix is accepted as well.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}
