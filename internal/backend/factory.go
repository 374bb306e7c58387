// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend implements the HTTP client for the Fortress panel
// authentication service. It maps the wire responses onto the session
// package's domain types and error kinds.
package backend

import "github.com/ryo-clouds/fortress-panel-sub001/internal/session"

// New creates a backend implementation for the given base URL.
func New(baseURL string, opts ...Option) session.API {
	return newHTTP(baseURL, opts...)
}

var _ session.API = (*HTTP)(nil)
