package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// API paths of the Fortress panel authentication service.
const (
	loginPath   = "/api/v1/auth/login"
	refreshPath = "/api/v1/auth/refresh"
	logoutPath  = "/api/v1/auth/logout"
)

// defaultTimeout bounds every request when the caller provides no deadline.
const defaultTimeout = 10 * time.Second

// HTTP implements the session backend contract over the panel REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all requests (e.g. "http://localhost:3001")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// Option customizes the HTTP client.
type Option func(*HTTP)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) { h.client.Timeout = d }
}

// newHTTP creates a new HTTP client for the given base URL.
func newHTTP(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// postJSON issues a POST with a JSON body. A non-empty bearer token is sent
// in the Authorization header. The caller owns the response body.
func (h *HTTP) postJSON(ctx context.Context, path string, body any, bearer string) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return h.client.Do(req)
}

// errorMessage pulls the server-supplied {error} string out of a failure
// body, returning fallback when the body carries none.
func errorMessage(r io.Reader, fallback string) string {
	var out errorResponse
	if err := json.NewDecoder(r).Decode(&out); err == nil {
		if msg := strings.TrimSpace(out.Error); msg != "" {
			return msg
		}
	}
	return fallback
}
