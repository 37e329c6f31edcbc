package restapi

// Package restapi is the HTTP client for the rental platform backend.
// All requests go through one client that attaches the bearer token from the
// token store and carries a cookie jar so the server-held refresh cookie
// travels automatically.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/publicsuffix"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

// Config holds configuration for the backend API client.
type Config struct {
	// BaseURL is the backend API base URL without a trailing slash.
	BaseURL string
	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration
	// Tokens supplies the bearer token attached to outgoing requests.
	Tokens ports.TokenStore
	// Logger is optional; defaults to slog.Default().
	Logger *slog.Logger
	// HTTPClient overrides the underlying client (tests). When nil a client
	// with a public-suffix-aware cookie jar is created.
	HTTPClient *http.Client
}

// Client talks to the rental platform backend.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   ports.TokenStore
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a backend API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	// Wrap the transport so every request picks up the current bearer token.
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = &bearerTransport{next: base, tokens: cfg.Tokens}

	return &Client{
		baseURL:  cfg.BaseURL,
		http:     httpClient,
		tokens:   cfg.Tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}, nil
}

// bearerTransport attaches "Authorization: Bearer <token>" when a token is
// held. With no token the request goes out unauthenticated.
type bearerTransport struct {
	next   http.RoundTripper
	tokens ports.TokenStore
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Get(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

// doJSON performs a JSON request against the backend and decodes the response
// into out (when non-nil). Errors are mapped to the application taxonomy:
// transport failures become unavailable, 401/403 become unauthorized, other
// non-2xx statuses become remote errors, and undecodable bodies become
// validation errors.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal(fmt.Sprintf("encode %s %s request", method, path), err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("build %s %s request", method, path), err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Unavailable(fmt.Sprintf("%s %s", method, path), err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "close response body failed", "error", cerr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperrors.Unauthorized(fmt.Sprintf("%s %s rejected with status %d", method, path, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperrors.Remotef("%s %s returned status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Validation(fmt.Sprintf("decode %s %s response", method, path)).Wrap(err)
	}
	return nil
}

// checkPayload runs schema validation on a decoded wire payload.
// The rest of the system never sees an unvalidated payload.
func (c *Client) checkPayload(payload any, operation string) error {
	if err := c.validate.Struct(payload); err != nil {
		return apperrors.Validation(fmt.Sprintf("%s response did not match the expected schema", operation)).Wrap(err)
	}
	return nil
}
