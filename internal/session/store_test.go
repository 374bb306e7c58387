// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/backend"
	apperrors "github.com/ryo-clouds/fortress-panel-sub001/internal/errors"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
)

// fakeBackend implements session.API with injectable behavior and call counters.
type fakeBackend struct {
	mu sync.Mutex

	loginFn   func(ctx context.Context, username, password string, rememberMe bool) (session.LoginResult, error)
	refreshFn func(ctx context.Context, refreshToken string) (session.TokenPair, error)
	logoutFn  func(ctx context.Context, accessToken, refreshToken string) error

	loginCalls   int
	refreshCalls int
	logoutCalls  int
}

func (f *fakeBackend) Login(ctx context.Context, username, password string, rememberMe bool) (session.LoginResult, error) {
	f.mu.Lock()
	f.loginCalls++
	fn := f.loginFn
	f.mu.Unlock()
	if fn == nil {
		return okLogin(), nil
	}
	return fn(ctx, username, password, rememberMe)
}

func (f *fakeBackend) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	f.mu.Lock()
	f.refreshCalls++
	fn := f.refreshFn
	f.mu.Unlock()
	if fn == nil {
		return session.TokenPair{Access: "at-2", Refresh: "rt-2"}, nil
	}
	return fn(ctx, refreshToken)
}

func (f *fakeBackend) Logout(ctx context.Context, accessToken, refreshToken string) error {
	f.mu.Lock()
	f.logoutCalls++
	fn := f.logoutFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, accessToken, refreshToken)
}

func (f *fakeBackend) counts() (login, refresh, logout int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.refreshCalls, f.logoutCalls
}

// memStorage is an in-memory session.Storage.
type memStorage struct {
	mu     sync.Mutex
	rec    session.Record
	has    bool
	saves  int
	clears int
}

func (m *memStorage) Load() (session.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.has, nil
}

func (m *memStorage) Save(rec session.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.has = rec, true
	m.saves++
	return nil
}

func (m *memStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.has = session.Record{}, false
	m.clears++
	return nil
}

func (m *memStorage) current() (session.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.has
}

func (m *memStorage) stats() (saves, clears int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves, m.clears
}

func okLogin() session.LoginResult {
	return session.LoginResult{
		User: &session.User{
			ID:       "u-1",
			Username: "alice",
			Email:    "alice@example.com",
			Role:     session.RoleAdmin,
			Status:   session.StatusActive,
		},
		Tokens: session.TokenPair{Access: "at-1", Refresh: "rt-1"},
	}
}

func newTestStore(be session.API, st session.Storage) *session.Store {
	return session.New(be, st, zerolog.Nop())
}

// assertInvariants checks the two store invariants on the current snapshot:
// authenticated implies a full user+token set, and the tokens are both
// present or both absent.
func assertInvariants(t *testing.T, s *session.Store) {
	t.Helper()
	rec := s.Snapshot()
	assert.Equal(t, rec.User != nil && rec.AccessToken != "" && rec.RefreshToken != "", rec.IsAuthenticated,
		"isAuthenticated must mirror user+tokens presence")
	assert.Equal(t, rec.AccessToken == "", rec.RefreshToken == "",
		"tokens must be set and cleared together")
}

func TestLoginSuccess(t *testing.T) {
	be := &fakeBackend{}
	st := &memStorage{}
	s := newTestStore(be, st)

	err := s.Login(context.Background(), "alice", "good", true)
	require.NoError(t, err)

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
	assert.Equal(t, "at-1", s.AccessToken())
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "alice", s.CurrentUser().Username)
	assertInvariants(t, s)

	rec, has := st.current()
	require.True(t, has, "session must be persisted on login")
	assert.True(t, rec.IsAuthenticated)
	assert.Equal(t, "rt-1", rec.RefreshToken)
	s.Logout(context.Background())
}

func TestLoginFailureEndsUnauthenticated(t *testing.T) {
	be := &fakeBackend{
		loginFn: func(context.Context, string, string, bool) (session.LoginResult, error) {
			return session.LoginResult{}, apperrors.New(apperrors.AuthFailed, "Invalid credentials")
		},
	}
	st := &memStorage{}
	s := newTestStore(be, st)

	err := s.Login(context.Background(), "alice", "bad", false)
	require.Error(t, err)
	assert.Equal(t, apperrors.AuthFailed, apperrors.KindOf(err))

	assert.Nil(t, s.CurrentUser())
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.Loading())
	assert.Equal(t, "Invalid credentials", s.Err())
	assertInvariants(t, s)
}

func TestLoginClearsPreviousError(t *testing.T) {
	be := &fakeBackend{}
	st := &memStorage{}
	s := newTestStore(be, st)

	s.SetError("stale failure")
	require.NoError(t, s.Login(context.Background(), "alice", "good", false))
	assert.Empty(t, s.Err())
	s.Logout(context.Background())
}

func TestLoginLoadingFlag(t *testing.T) {
	release := make(chan struct{})
	be := &fakeBackend{
		loginFn: func(context.Context, string, string, bool) (session.LoginResult, error) {
			<-release
			return okLogin(), nil
		},
	}
	s := newTestStore(be, &memStorage{})

	done := make(chan error, 1)
	go func() { done <- s.Login(context.Background(), "alice", "good", false) }()

	require.Eventually(t, s.Loading, time.Second, time.Millisecond,
		"loading must be true while the login call is in flight")
	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Loading())
	s.Logout(context.Background())
}

func TestRefreshWithoutTokenBehavesLikeLogout(t *testing.T) {
	be := &fakeBackend{}
	st := &memStorage{}
	s := newTestStore(be, st)

	require.NoError(t, s.Refresh(context.Background()))

	_, refreshCalls, logoutCalls := be.counts()
	assert.Zero(t, refreshCalls, "no refresh call without a credential")
	assert.Zero(t, logoutCalls, "no remote logout without a refresh token")
	assert.False(t, s.IsAuthenticated())
	assertInvariants(t, s)
}

func TestRefreshSuccessRotatesTokensOnly(t *testing.T) {
	be := &fakeBackend{}
	st := &memStorage{}
	s := newTestStore(be, st)
	require.NoError(t, s.Login(context.Background(), "alice", "good", false))

	s.SetError("stale failure")
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, "at-2", s.AccessToken())
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "alice", s.CurrentUser().Username)
	assert.Empty(t, s.Err(), "refresh clears the error on success")
	assertInvariants(t, s)

	rec, has := st.current()
	require.True(t, has)
	assert.Equal(t, "rt-2", rec.RefreshToken)
	s.Logout(context.Background())
}

func TestRefreshFailureIsFatalToSession(t *testing.T) {
	be := &fakeBackend{
		refreshFn: func(context.Context, string) (session.TokenPair, error) {
			return session.TokenPair{}, apperrors.New(apperrors.AuthFailed, "Token refresh failed")
		},
	}
	st := &memStorage{}
	s := newTestStore(be, st)
	require.NoError(t, s.Login(context.Background(), "alice", "good", false))

	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.SessionExpired, apperrors.KindOf(err))

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.AccessToken())
	assertInvariants(t, s)

	_, has := st.current()
	assert.False(t, has, "persisted record must be removed")
}

func TestLogoutSwallowsNetworkErrors(t *testing.T) {
	be := &fakeBackend{
		logoutFn: func(context.Context, string, string) error {
			return assert.AnError
		},
	}
	st := &memStorage{}
	s := newTestStore(be, st)
	require.NoError(t, s.Login(context.Background(), "alice", "good", false))

	s.Logout(context.Background())

	_, _, logoutCalls := be.counts()
	assert.Equal(t, 1, logoutCalls, "remote logout attempted once")
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.Err())
	assertInvariants(t, s)
}

func TestInitializeAuthRehydratesCompleteRecord(t *testing.T) {
	st := &memStorage{}
	require.NoError(t, st.Save(session.Record{
		User:            &session.User{ID: "u-1", Username: "alice", Role: session.RoleUser, Status: session.StatusActive},
		IsAuthenticated: true,
		AccessToken:     "at-1",
		RefreshToken:    "rt-1",
	}))
	s := newTestStore(&fakeBackend{}, st)

	require.NoError(t, s.InitializeAuth(context.Background()))

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.Loading())
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "alice", s.CurrentUser().Username)
	assertInvariants(t, s)
	s.Logout(context.Background())
}

func TestInitializeAuthClearsPartialRecord(t *testing.T) {
	st := &memStorage{}
	require.NoError(t, st.Save(session.Record{AccessToken: "at-only"}))
	s := newTestStore(&fakeBackend{}, st)

	require.NoError(t, s.InitializeAuth(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.AccessToken())
	assertInvariants(t, s)

	_, has := st.current()
	assert.False(t, has, "corrupt record must be removed")
}

func TestInitializeAuthMissingRecord(t *testing.T) {
	s := newTestStore(&fakeBackend{}, &memStorage{})
	require.NoError(t, s.InitializeAuth(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assertInvariants(t, s)
}

func TestClearAndSetError(t *testing.T) {
	s := newTestStore(&fakeBackend{}, &memStorage{})

	s.SetError("boom")
	assert.Equal(t, "boom", s.Err())
	s.ClearError()
	assert.Empty(t, s.Err())
}

// TestStoreAgainstMockPanel drives the store through the real HTTP backend
// against a mock panel, covering the wire-level login contract.
func TestStoreAgainstMockPanel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username   string `json:"username"`
			Password   string `json:"password"`
			RememberMe bool   `json:"rememberMe"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if body.Password != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": "u-1", "username": body.Username, "email": "u@example.com",
				"role": "user", "status": "active", "mfa_enabled": false,
			},
			"tokens": map[string]string{"access_token": "at-1", "refresh_token": "rt-1"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	st := &memStorage{}
	s := session.New(backend.New(srv.URL), st, zerolog.Nop())

	err := s.Login(context.Background(), "u", "bad", false)
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", s.Err())
	assert.False(t, s.IsAuthenticated())
	assertInvariants(t, s)

	require.NoError(t, s.Login(context.Background(), "u", "good", false))
	assert.True(t, s.IsAuthenticated())
	assert.Empty(t, s.Err())
	assert.Equal(t, "at-1", s.AccessToken())
	assertInvariants(t, s)
	s.Logout(context.Background())
}
