// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/ryo-clouds/fortress-panel-sub001/internal/errors"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
)

// refreshFallback is used when a failure body carries no error string.
const refreshFallback = "Token refresh failed"

// Refresh calls POST /api/v1/auth/refresh with {refresh_token} and returns
// the rotated token pair. The backend always returns both tokens; a body
// missing either is a decode failure.
func (h *HTTP) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	resp, err := h.postJSON(ctx, refreshPath, refreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return session.TokenPair{}, apperrors.Wrap(apperrors.AuthFailed, refreshFallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return session.TokenPair{}, apperrors.New(apperrors.AuthFailed, errorMessage(resp.Body, refreshFallback))
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return session.TokenPair{}, apperrors.Wrap(apperrors.AuthFailed, refreshFallback,
			apperrors.Wrap(apperrors.DecodeFailed, "malformed refresh response", err))
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return session.TokenPair{}, apperrors.Wrap(apperrors.AuthFailed, refreshFallback,
			apperrors.New(apperrors.DecodeFailed, "refresh response missing tokens"))
	}

	return session.TokenPair{Access: out.AccessToken, Refresh: out.RefreshToken}, nil
}
