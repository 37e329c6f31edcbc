package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

// Compile-time conformance to the gateway port.
var _ ports.Gateway = (*Client)(nil)

// sessionPayload is the shared wire shape of every successful auth response.
// The profile and refresh endpoints return projections of it.
type sessionPayload struct {
	AccessToken string      `json:"accessToken" validate:"required"`
	User        userPayload `json:"user"        validate:"required"`
}

type userPayload struct {
	ID          string   `json:"id"          validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	FullName    string   `json:"fullName"    validate:"required"`
	Roles       []string `json:"roles"       validate:"required,min=1,dive,oneof=landlord admin legal"`
	DefaultRole string   `json:"defaultRole" validate:"required,oneof=landlord admin legal"`
}

type tokensPayload struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

func (p userPayload) toDomain() domainauth.User {
	roles := make([]domainauth.Role, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, domainauth.Role(r))
	}
	return domainauth.User{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Roles:       roles,
		DefaultRole: domainauth.Role(p.DefaultRole),
	}
}

func (p sessionPayload) toCredentials() ports.Credentials {
	return ports.Credentials{
		Tokens: domainauth.Tokens{AccessToken: p.AccessToken},
		User:   p.User.toDomain(),
	}
}

// LoginWithPassword posts credentials to POST /auth/login. On success the
// access token is installed in the token store before the call returns.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (ports.Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	var payload sessionPayload
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return ports.Credentials{}, err
	}
	if err := c.checkPayload(payload, "login"); err != nil {
		return ports.Credentials{}, err
	}

	c.tokens.Set(payload.AccessToken)
	return payload.toCredentials(), nil
}

// FetchProfile returns the current user from GET /auth/me.
func (c *Client) FetchProfile(ctx context.Context) (domainauth.User, error) {
	if c.tokens.Get() == "" {
		return domainauth.User{}, apperrors.Unauthorized("no access token attached")
	}

	var payload userPayload
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &payload); err != nil {
		return domainauth.User{}, err
	}
	if err := c.checkPayload(payload, "profile"); err != nil {
		return domainauth.User{}, err
	}

	return payload.toDomain(), nil
}

// Refresh posts to POST /auth/refresh with no body; the server identifies the
// session solely through the HTTP-only refresh cookie carried by the jar.
// The new access token is installed in the token store on success.
func (c *Client) Refresh(ctx context.Context) (domainauth.Tokens, error) {
	var payload tokensPayload
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", nil, &payload); err != nil {
		return domainauth.Tokens{}, err
	}
	if err := c.checkPayload(payload, "refresh"); err != nil {
		return domainauth.Tokens{}, err
	}

	c.tokens.Set(payload.AccessToken)
	return domainauth.Tokens{AccessToken: payload.AccessToken}, nil
}

// Logout posts to POST /auth/logout. The token store is cleared even when the
// backend call fails; local cleanup is guaranteed.
func (c *Client) Logout(ctx context.Context) error {
	defer c.tokens.Set("")
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ExchangeOAuthCode posts the authorization code (and the state, when
// present) to POST /auth/{provider}/callback and installs the token on
// success.
func (c *Client) ExchangeOAuthCode(ctx context.Context, provider, code, state string) (ports.Credentials, error) {
	if provider == "" {
		return ports.Credentials{}, apperrors.Validation("oauth provider is required")
	}
	if code == "" {
		return ports.Credentials{}, apperrors.Validation("authorization code is required")
	}

	body := map[string]string{"code": code}
	if state != "" {
		body["state"] = state
	}
	path := "/auth/" + url.PathEscape(provider) + "/callback"

	var payload sessionPayload
	if err := c.doJSON(ctx, http.MethodPost, path, body, &payload); err != nil {
		return ports.Credentials{}, err
	}
	if err := c.checkPayload(payload, "oauth exchange"); err != nil {
		return ports.Credentials{}, err
	}

	c.tokens.Set(payload.AccessToken)
	return payload.toCredentials(), nil
}
