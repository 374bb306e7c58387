// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "github.com/ryo-clouds/fortress-panel-sub001/internal/session"

// loginRequest is the POST /api/v1/auth/login body.
type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// tokensPayload is the nested token object in a login response.
type tokensPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// loginResponse is a successful login body.
type loginResponse struct {
	User   *session.User `json:"user"`
	Tokens tokensPayload `json:"tokens"`
}

// refreshRequest is the POST /api/v1/auth/refresh and logout body.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshResponse is a successful refresh body. Tokens are flat here,
// unlike the login response.
type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// errorResponse is the failure body shape shared by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}
