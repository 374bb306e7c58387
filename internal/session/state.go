// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import "context"

// RecordName identifies the persisted session record.
const RecordName = "fortress-auth"

// Record is the durable subset of session state. Loading and error flags
// are transient and deliberately absent.
type Record struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	AccessToken     string `json:"accessToken"`
	RefreshToken    string `json:"refreshToken"`
}

// Complete reports whether the record holds everything a live session needs.
// Partial records (e.g. a token without a user) are treated as corrupt.
func (r Record) Complete() bool {
	return r.User != nil && r.AccessToken != "" && r.RefreshToken != ""
}

// TokenPair is an access/refresh token couple. The invariant throughout the
// store is that both are set or both are empty.
type TokenPair struct {
	Access  string
	Refresh string
}

// LoginResult is a successful login response mapped onto domain types.
type LoginResult struct {
	User   *User
	Tokens TokenPair
}

// API is the backend contract the store depends on.
// Implementations may call the real HTTP endpoints or provide mocks for tests.
type API interface {
	// Login exchanges credentials for a user and a token pair.
	Login(ctx context.Context, username, password string, rememberMe bool) (LoginResult, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Logout invalidates the session on the backend.
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Storage persists the session record between process runs.
type Storage interface {
	// Load reads the record; the bool is false when no record exists.
	Load() (Record, bool, error)
	// Save writes the record.
	Save(Record) error
	// Clear removes the record.
	Clear() error
}
