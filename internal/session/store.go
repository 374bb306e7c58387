// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the client-side authentication state for the Fortress
// panel: the current user, the token pair, and transient loading/error flags.
// All reads and writes go through the Store; the durable subset of the state
// is written through an injected Storage on every change and rehydrated once
// at startup by InitializeAuth.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/ryo-clouds/fortress-panel-sub001/internal/errors"
)

// RefreshInterval is how often the armed scheduler rotates tokens.
// It runs inside a typical 15 minute access token lifetime.
const RefreshInterval = 14 * time.Minute

// refreshCallTimeout bounds a single scheduler-driven refresh call.
const refreshCallTimeout = 30 * time.Second

// Store is the session state container. It is safe for concurrent use;
// overlapping calls keep last-response-wins semantics, there is no request
// fencing.
type Store struct {
	be  API
	st  Storage
	log zerolog.Logger

	refreshEvery time.Duration

	mu            sync.Mutex
	user          *User
	authenticated bool
	loading       bool
	lastErr       string
	accessToken   string
	refreshToken  string
	stopRefresh   context.CancelFunc
}

// Option customizes a Store.
type Option func(*Store)

// WithRefreshInterval overrides the scheduler period. Used by tests.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Store) { s.refreshEvery = d }
}

// New builds a Store over the given backend and storage.
func New(be API, st Storage, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		be:           be,
		st:           st,
		log:          log.With().Str("component", "session").Logger(),
		refreshEvery: RefreshInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates against the backend and, on success, transitions the
// store to the authenticated state. On failure the store ends unauthenticated
// with the server-supplied message in Err, and the error is returned so
// callers can react synchronously. No retry.
func (s *Store) Login(ctx context.Context, username, password string, rememberMe bool) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	res, err := s.be.Login(ctx, username, password, rememberMe)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.clearLocked()
		s.lastErr = apperrors.Message(err)
		s.persistLocked()
		s.mu.Unlock()
		return err
	}
	s.user = res.User
	s.accessToken = res.Tokens.Access
	s.refreshToken = res.Tokens.Refresh
	s.authenticated = true
	s.persistLocked()
	s.mu.Unlock()

	s.log.Debug().Str("username", username).Msg("login succeeded")
	s.startRefresher()
	return nil
}

// Logout notifies the backend (best-effort, failures are swallowed), stops
// the refresh scheduler and unconditionally clears all session state. It
// never fails from the caller's perspective.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	access, refresh := s.accessToken, s.refreshToken
	s.mu.Unlock()

	if refresh != "" {
		if err := s.be.Logout(ctx, access, refresh); err != nil {
			s.log.Debug().Err(err).Msg("remote logout failed, clearing local session anyway")
		}
	}

	s.stopRefresher()

	s.mu.Lock()
	s.clearLocked()
	s.loading = false
	s.lastErr = ""
	if err := s.st.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.mu.Unlock()
}

// Refresh rotates the token pair in place. With no refresh token held it
// degrades to Logout without touching the network. Any failure is fatal to
// the session: the store logs it, forces logout and reports SessionExpired.
// User and authentication flags are untouched on success.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()

	if refresh == "" {
		s.Logout(ctx)
		return nil
	}

	pair, err := s.be.Refresh(ctx, refresh)
	if err != nil {
		s.log.Warn().Err(err).Msg("token refresh failed, ending session")
		s.Logout(ctx)
		return apperrors.Wrap(apperrors.SessionExpired, "session expired", err)
	}

	s.mu.Lock()
	s.accessToken = pair.Access
	s.refreshToken = pair.Refresh
	s.lastErr = ""
	s.persistLocked()
	s.mu.Unlock()

	s.log.Debug().Msg("token pair rotated")
	return nil
}

// InitializeAuth rehydrates the store from persisted state. Called once at
// startup. A complete record restores the authenticated session and arms the
// refresh scheduler; anything partial or missing forces a full clear.
func (s *Store) InitializeAuth(ctx context.Context) error {
	rec, ok, err := s.st.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load persisted session, starting unauthenticated")
		s.forceClear()
		return apperrors.Wrap(apperrors.StorageFailed, "failed to load session", err)
	}
	if !ok || !rec.Complete() {
		s.forceClear()
		return nil
	}

	s.mu.Lock()
	s.user = rec.User
	s.accessToken = rec.AccessToken
	s.refreshToken = rec.RefreshToken
	s.authenticated = true
	s.loading = false
	s.mu.Unlock()

	s.log.Debug().Str("username", rec.User.Username).Msg("session rehydrated")
	s.startRefresher()
	return nil
}

// ClearError clears the last failure message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// SetError sets the failure message directly.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// Snapshot returns a copy of the durable subset of the state.
func (s *Store) Snapshot() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked()
}

// CurrentUser returns the authenticated user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUser(s.user)
}

// IsAuthenticated reports whether a full session is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Loading reports whether a login call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last failure message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AccessToken returns the current bearer credential, or "".
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// forceClear resets the in-memory state and removes the persisted record.
func (s *Store) forceClear() {
	s.mu.Lock()
	s.clearLocked()
	s.loading = false
	s.lastErr = ""
	if err := s.st.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.mu.Unlock()
}

// clearLocked drops user, tokens and the authenticated flag together,
// keeping the both-or-neither token invariant. Caller holds the lock.
func (s *Store) clearLocked() {
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.authenticated = false
}

// recordLocked builds the durable subset. Caller holds the lock.
func (s *Store) recordLocked() Record {
	return Record{
		User:            cloneUser(s.user),
		IsAuthenticated: s.authenticated,
		AccessToken:     s.accessToken,
		RefreshToken:    s.refreshToken,
	}
}

// persistLocked writes the durable subset through storage. Persistence
// failures are logged, never fatal to the session. Caller holds the lock.
func (s *Store) persistLocked() {
	if err := s.st.Save(s.recordLocked()); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.Permissions != nil {
		cp.Permissions = make(map[string]any, len(u.Permissions))
		for k, v := range u.Permissions {
			cp.Permissions[k] = v
		}
	}
	return &cp
}
