// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"time"
)

// startRefresher arms the periodic token refresh. The scheduler is owned by
// the store, cancelled on Logout and re-armed by the next Login or
// InitializeAuth. Arming twice is a no-op.
func (s *Store) startRefresher() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopRefresh != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopRefresh = cancel
	go s.refreshLoop(ctx)
}

// stopRefresher cancels the scheduler. Safe to call when not armed, and safe
// to call from the scheduler goroutine itself (it cancels without waiting).
func (s *Store) stopRefresher() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopRefresh != nil {
		s.stopRefresh()
		s.stopRefresh = nil
	}
}

// refreshLoop fires Refresh on every tick until cancelled. Failures already
// force logout inside Refresh, which cancels this loop's context.
func (s *Store) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			callCtx, cancel := context.WithTimeout(ctx, refreshCallTimeout)
			if err := s.Refresh(callCtx); err != nil {
				s.log.Debug().Err(err).Msg("scheduled refresh failed")
			}
			cancel()
		}
	}
}
