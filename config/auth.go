package config

import (
	"fmt"
	"strings"
	"time"
)

// ChallengeStoreMode selects the backend for the OAuth challenge store.
type ChallengeStoreMode string

const (
	// ChallengeStoreMemory keeps the pending OAuth state in process memory.
	ChallengeStoreMemory ChallengeStoreMode = "memory"
	// ChallengeStoreRedis keeps the pending OAuth state in Redis, so a
	// login flow survives a process restart during the provider round-trip.
	ChallengeStoreRedis ChallengeStoreMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for ChallengeStoreMode.
func (m *ChallengeStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*m = ChallengeStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid ChallengeStoreMode: %q (valid options: memory, redis)", v)
	}
}

// OAuthProviderConfig contains the per-provider settings for third-party login.
// A provider with an empty ClientID is considered not configured; initiating a
// flow against it fails before any redirect happens.
type OAuthProviderConfig struct {
	ClientID string `env:"CLIENT_ID"`

	// AuthURL overrides the provider's authorization endpoint.
	// Leave empty to use the well-known endpoint for the provider.
	AuthURL string `env:"AUTH_URL"`

	// DiscoveryURL enables OIDC discovery for custom providers. When set,
	// the authorization endpoint is resolved from the discovery document.
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Google OAuth configuration.
	Google OAuthProviderConfig `envPrefix:"GOOGLE_"`

	// Microsoft OAuth configuration.
	Microsoft OAuthProviderConfig `envPrefix:"MICROSOFT_"`

	// Scope is the space-separated OAuth scope requested from providers.
	Scope string `env:"OAUTH_SCOPE" envDefault:"openid profile email"`

	// ChallengeStore selects where the pending OAuth state is kept.
	ChallengeStore ChallengeStoreMode `env:"OAUTH_CHALLENGE_STORE" envDefault:"memory"`

	// ChallengeTTL bounds how long an initiated flow may stay outstanding.
	ChallengeTTL time.Duration `env:"OAUTH_CHALLENGE_TTL" envDefault:"10m"`

	// RefreshLead is how long before access token expiry the session
	// refresher renews the token.
	RefreshLead time.Duration `env:"AUTH_REFRESH_LEAD" envDefault:"1m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if strings.TrimSpace(a.Scope) == "" {
		a.Scope = "openid profile email"
	}
	if a.ChallengeTTL <= 0 {
		a.ChallengeTTL = 10 * time.Minute
	}
	if a.RefreshLead <= 0 {
		a.RefreshLead = time.Minute
	}
}
