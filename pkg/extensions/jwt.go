// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package extensions

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// tokenClaims is the claim set minted by the identity service. Expiry and
// issued-at come from the embedded standard claims.
type tokenClaims struct {
	jwt.StandardClaims
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// JWTAuthProvider validates HS256-signed bearer tokens.
type JWTAuthProvider struct {
	secret []byte
}

// NewJWTAuthProvider builds a provider around a shared HMAC secret.
func NewJWTAuthProvider(secret string) *JWTAuthProvider {
	return &JWTAuthProvider{secret: []byte(secret)}
}

// Validate parses and verifies the token. Any parse or signature failure
// is reported as ErrInvalidToken; the underlying cause is wrapped for logs.
func (p *JWTAuthProvider) Validate(_ context.Context, token string) (*AuthInfo, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &AuthInfo{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
