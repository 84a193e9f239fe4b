// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package extensions defines the injection points where deployments plug
// in their own infrastructure. The exchange core treats authentication as
// an external collaborator: it receives a verified identity via
// AuthProvider and never issues or stores credentials itself.
//
// # Open Source Behavior
//
// With NopAuthProvider (the default when no JWT secret is configured),
// every request is authenticated as "local-user". This keeps a local
// single-user deployment working with zero auth infrastructure.
//
// # Deployment Behavior
//
// JWTAuthProvider validates HS256 bearer tokens minted by the identity
// service that also owns the users table. Custom providers (sessions,
// API keys, external IdPs) implement the same one-method interface.
package extensions

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned by AuthProvider implementations when the
// presented token is missing, malformed, expired or has a bad signature.
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthInfo is the verified identity of a requester.
type AuthInfo struct {
	// UserID is the unique identifier for the authenticated user.
	// This is the only required field and must never be empty.
	UserID string

	// Username is the user's display name. May be empty if the provider
	// does not carry it; entity author resolution falls back to the store.
	Username string

	// Email may be empty if not provided by the auth provider.
	Email string

	// Roles contains the user's role memberships. Unused by the core
	// workflow today; carried for deployments that layer authorization on.
	Roles []string
}

// AuthProvider validates authentication tokens.
type AuthProvider interface {
	// Validate checks the token and returns the requester's identity.
	// Returns ErrInvalidToken (possibly wrapped) for any rejected token.
	Validate(ctx context.Context, token string) (*AuthInfo, error)
}

// NopAuthProvider authenticates every request as a fixed local user.
// Intentional: local single-user deployments need no auth infrastructure.
type NopAuthProvider struct{}

// Validate always succeeds. The token is ignored, including empty ones.
func (p *NopAuthProvider) Validate(_ context.Context, _ string) (*AuthInfo, error) {
	return &AuthInfo{
		UserID:   "local-user",
		Username: "local-user",
		Roles:    []string{"admin"},
	}, nil
}
