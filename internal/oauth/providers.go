package oauth

// Package oauth implements the third-party login flow: initiating the
// provider redirect and completing the callback. The two halves share no
// in-memory continuation; they are correlated only through the persisted
// CSRF challenge.

import (
	"context"
	"fmt"
	"strings"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"

	"github.com/arrendo/arrendo-ui/config"
	"github.com/arrendo/arrendo-ui/internal/apperrors"
)

// Supported provider names. The name is also the tag appended to the
// callback redirect URI so the callback handler knows which backend endpoint
// to exchange against.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

type providerEntry struct {
	clientID string
	endpoint oauth2.Endpoint
	extras   []oauth2.AuthCodeOption
}

// Registry resolves provider authorization endpoints and builds authorize
// URLs. Endpoints come from the well-known constants, an explicit override,
// or OIDC discovery when a discovery URL is configured.
type Registry struct {
	providers   map[string]providerEntry
	callbackURL string
	scopes      []string
}

// RegistryConfig holds configuration for the provider registry.
type RegistryConfig struct {
	Auth config.AuthConfig
	// CallbackURL is this application's OAuth callback URL; the provider
	// name is appended as a query parameter per provider.
	CallbackURL string
}

// NewRegistry builds the provider registry. Discovery, when configured,
// happens once here.
func NewRegistry(ctx context.Context, cfg RegistryConfig) (*Registry, error) {
	if cfg.CallbackURL == "" {
		return nil, apperrors.Config("oauth callback URL is required")
	}

	r := &Registry{
		providers:   make(map[string]providerEntry),
		callbackURL: cfg.CallbackURL,
		scopes:      strings.Fields(cfg.Auth.Scope),
	}

	googleEndpoint, err := resolveEndpoint(ctx, cfg.Auth.Google, google.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("resolve google endpoint: %w", err)
	}
	r.providers[ProviderGoogle] = providerEntry{
		clientID: cfg.Auth.Google.ClientID,
		endpoint: googleEndpoint,
	}

	microsoftEndpoint, err := resolveEndpoint(ctx, cfg.Auth.Microsoft, microsoft.AzureADEndpoint("common"))
	if err != nil {
		return nil, fmt.Errorf("resolve microsoft endpoint: %w", err)
	}
	r.providers[ProviderMicrosoft] = providerEntry{
		clientID: cfg.Auth.Microsoft.ClientID,
		endpoint: microsoftEndpoint,
		// Microsoft requires the response delivery mode to be pinned.
		extras: []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("response_mode", "query")},
	}

	return r, nil
}

// resolveEndpoint picks the provider endpoint: discovery wins, then an
// explicit AuthURL override, then the library default.
func resolveEndpoint(ctx context.Context, pc config.OAuthProviderConfig, def oauth2.Endpoint) (oauth2.Endpoint, error) {
	if pc.DiscoveryURL != "" {
		issuer := strings.TrimSuffix(pc.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		op, err := gooidc.NewProvider(ctx, issuer)
		if err != nil {
			return oauth2.Endpoint{}, fmt.Errorf("oidc discovery: %w", err)
		}
		return op.Endpoint(), nil
	}
	if pc.AuthURL != "" {
		return oauth2.Endpoint{AuthURL: pc.AuthURL, TokenURL: def.TokenURL}, nil
	}
	return def, nil
}

// AuthorizeURL builds the provider authorization URL for the given state.
// An unknown provider or a missing client ID is a configuration error; the
// caller must not redirect anywhere in that case.
func (r *Registry) AuthorizeURL(provider, state string) (string, error) {
	entry, ok := r.providers[provider]
	if !ok {
		return "", apperrors.Configf("unknown oauth provider %q", provider)
	}
	if entry.clientID == "" {
		return "", apperrors.Configf("client ID for oauth provider %q is not configured", provider)
	}

	conf := &oauth2.Config{
		ClientID:    entry.clientID,
		RedirectURL: r.callbackURL + "?provider=" + provider,
		Scopes:      r.scopes,
		Endpoint:    entry.endpoint,
	}
	return conf.AuthCodeURL(state, entry.extras...), nil
}

// Providers returns the names of all registered providers, configured or not.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
