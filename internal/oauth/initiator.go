package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

// stateBytes is the entropy of the CSRF state value; it is hex-encoded on
// the wire.
const stateBytes = 32

// Initiator begins a third-party login. It does not navigate itself: it
// stores the challenge and hands the authorization URL to the HTTP layer,
// which answers the browser with a redirect. Initiation is terminal for the
// current page; nothing in memory survives until the callback.
type Initiator struct {
	registry   *Registry
	challenges ports.ChallengeStore
	logger     *slog.Logger
}

// NewInitiator constructs an Initiator.
func NewInitiator(registry *Registry, challenges ports.ChallengeStore, logger *slog.Logger) *Initiator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Initiator{registry: registry, challenges: challenges, logger: logger}
}

// Begin generates a fresh challenge, stores it, and returns the provider
// authorization URL. Configuration problems abort before anything is stored,
// so the browser is never redirected to a malformed URL.
func (i *Initiator) Begin(ctx context.Context, provider string) (string, error) {
	state, err := newState()
	if err != nil {
		return "", apperrors.Internal("generate oauth state", err)
	}

	authURL, err := i.registry.AuthorizeURL(provider, state)
	if err != nil {
		return "", err
	}

	if err := i.challenges.Put(ctx, state); err != nil {
		return "", apperrors.Internal("store oauth challenge", err)
	}

	i.logger.InfoContext(ctx, "oauth flow initiated", "provider", provider)
	return authURL, nil
}

// newState returns a cryptographically random 32-byte value, hex-encoded.
func newState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}
