package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/session.

import (
	"context"
	"errors"

	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
)

// Credentials pairs the access token with the profile it belongs to.
// The two always travel together; callers install them atomically.
type Credentials struct {
	Tokens domainauth.Tokens
	User   domainauth.User
}

// Gateway is the backend auth API. Every operation validates the wire payload
// against the shared response schema and fails with a validation error when
// the backend returns an unexpected shape.
type Gateway interface {
	// LoginWithPassword posts credentials. On success the access token is
	// already installed in the token store when the call returns.
	LoginWithPassword(ctx context.Context, email, password string) (Credentials, error)

	// FetchProfile returns the current user. It requires a prior valid token
	// and fails with an unauthorized error when none is attached.
	FetchProfile(ctx context.Context) (domainauth.User, error)

	// Refresh exchanges the server-held refresh cookie for a new access token
	// and installs it in the token store.
	Refresh(ctx context.Context) (domainauth.Tokens, error)

	// Logout notifies the backend, then clears the token store even when the
	// backend call fails.
	Logout(ctx context.Context) error

	// ExchangeOAuthCode posts the authorization code to the provider-specific
	// endpoint and installs the token on success.
	ExchangeOAuthCode(ctx context.Context, provider, code, state string) (Credentials, error)
}

// TokenStore holds the current bearer token in memory only.
// An empty value means subsequent backend requests go out unauthenticated.
type TokenStore interface {
	Set(token string)
	Get() string
}

// ErrNoChallenge is returned by Take when no challenge is outstanding.
var ErrNoChallenge = errors.New("no oauth challenge outstanding")

// ChallengeStore keeps the single pending OAuth CSRF state between the
// initiation redirect and the provider callback. At most one challenge is
// outstanding at a time; Take consumes it so it can be used exactly once.
type ChallengeStore interface {
	// Put stores the state value, replacing any previous challenge.
	Put(ctx context.Context, state string) error

	// Take returns the stored state and deletes it, or ErrNoChallenge.
	Take(ctx context.Context) (string, error)
}
