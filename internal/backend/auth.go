package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/ryo-clouds/fortress-panel-sub001/internal/errors"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
)

// loginFallback is used when a failure body carries no error string.
const loginFallback = "Login failed"

// Login calls POST /api/v1/auth/login with {username, password, rememberMe}.
// Rejections surface as AuthFailed with the server-supplied message; a 2xx
// body that does not match the expected schema is an AuthFailed wrapping
// DecodeFailed.
func (h *HTTP) Login(ctx context.Context, username, password string, rememberMe bool) (session.LoginResult, error) {
	resp, err := h.postJSON(ctx, loginPath, loginRequest{
		Username:   username,
		Password:   password,
		RememberMe: rememberMe,
	}, "")
	if err != nil {
		return session.LoginResult{}, apperrors.Wrap(apperrors.AuthFailed, loginFallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return session.LoginResult{}, apperrors.New(apperrors.AuthFailed, errorMessage(resp.Body, loginFallback))
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return session.LoginResult{}, apperrors.Wrap(apperrors.AuthFailed, loginFallback,
			apperrors.Wrap(apperrors.DecodeFailed, "malformed login response", err))
	}
	if out.User == nil || out.Tokens.AccessToken == "" || out.Tokens.RefreshToken == "" {
		return session.LoginResult{}, apperrors.Wrap(apperrors.AuthFailed, loginFallback,
			apperrors.New(apperrors.DecodeFailed, "login response missing user or tokens"))
	}

	return session.LoginResult{
		User: out.User,
		Tokens: session.TokenPair{
			Access:  out.Tokens.AccessToken,
			Refresh: out.Tokens.RefreshToken,
		},
	}, nil
}

// Logout calls POST /api/v1/auth/logout with {refresh_token} and the access
// token as bearer authorization. The response body is ignored; a non-2xx
// status is still reported so callers can decide to swallow it.
func (h *HTTP) Logout(ctx context.Context, accessToken, refreshToken string) error {
	resp, err := h.postJSON(ctx, logoutPath, refreshRequest{RefreshToken: refreshToken}, accessToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("logout failed: %d", resp.StatusCode)
	}
	return nil
}
