package config

import "strings"

// HTTPConfig contains configuration for the local UI server.
type HTTPConfig struct {
	// Addr is the address to bind the UI server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the externally visible base URL of the UI server
	// (e.g., "http://localhost:8080"). OAuth providers redirect back to
	// BaseURL + "/auth/callback", so it must match the redirect URI
	// registered with each provider.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimSuffix(strings.TrimSpace(h.BaseURL), "/")
}

// CallbackURL returns the OAuth callback URL served by this application.
func (h HTTPConfig) CallbackURL() string {
	return h.BaseURL + "/auth/callback"
}
