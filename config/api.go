package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the rental platform backend API.
type APIConfig struct {
	// BaseURL is the base URL of the backend API (e.g., "https://api.arrendo.app").
	BaseURL string `env:"BASE_URL" envDefault:"https://api.example.com"`

	// Timeout is the per-request timeout for backend calls.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimSuffix(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
