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

// ServiceOptions carries the pluggable collaborators a service is built
// with. Zero-value fields are replaced by open-source defaults in
// DefaultOptions, so deployments only set what they customize.
type ServiceOptions struct {
	// AuthProvider validates request tokens. Defaults to NopAuthProvider.
	AuthProvider AuthProvider
}

// DefaultOptions fills nil fields with the open-source defaults.
func DefaultOptions(opts *ServiceOptions) *ServiceOptions {
	if opts == nil {
		opts = &ServiceOptions{}
	}
	if opts.AuthProvider == nil {
		opts.AuthProvider = &NopAuthProvider{}
	}
	return opts
}
