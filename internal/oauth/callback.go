package oauth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	"github.com/arrendo/arrendo-ui/internal/ports"
	"github.com/arrendo/arrendo-ui/internal/session"
)

// Status is the terminal outcome of one callback invocation.
type Status string

const (
	// StatusProcessing is the transient state while the exchange runs.
	StatusProcessing Status = "processing"
	// StatusDone means the session was installed; navigate to the app.
	StatusDone Status = "done"
	// StatusError means the callback failed; the only way forward is the
	// manual path back to the login entry point.
	StatusError Status = "error"
)

// CallbackParams are the query parameters the provider redirects back with.
type CallbackParams struct {
	Provider string
	Code     string
	State    string
}

// Callback completes a third-party login when the provider redirects back.
type Callback struct {
	gateway    ports.Gateway
	challenges ports.ChallengeStore
	sessions   *session.Manager
	logger     *slog.Logger
}

// NewCallback constructs a Callback.
func NewCallback(gateway ports.Gateway, challenges ports.ChallengeStore, sessions *session.Manager, logger *slog.Logger) *Callback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Callback{gateway: gateway, challenges: challenges, sessions: sessions, logger: logger}
}

// Complete validates the redirect and exchanges the authorization code.
// The CSRF check runs before any network call: the stored challenge is
// consumed (read and deleted, exactly once) and compared to the returned
// state with exact string equality. On success the tokens and the user are
// installed in one atomic transition. The returned status is terminal; there
// is no automatic retry.
func (c *Callback) Complete(ctx context.Context, p CallbackParams) (Status, error) {
	provider := p.Provider
	if provider == "" {
		provider = ProviderGoogle
	}

	if p.Code == "" {
		return StatusError, apperrors.Validation("no authorization code received from oauth provider")
	}

	stored, err := c.challenges.Take(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoChallenge) {
			return StatusError, apperrors.StateMismatch("no oauth challenge outstanding for this callback")
		}
		return StatusError, apperrors.Internal("read oauth challenge", err)
	}
	if stored != p.State {
		c.logger.WarnContext(ctx, "oauth state mismatch", "provider", provider)
		return StatusError, apperrors.StateMismatch("oauth state parameter does not match the stored challenge")
	}

	creds, err := c.gateway.ExchangeOAuthCode(ctx, provider, p.Code, p.State)
	if err != nil {
		return StatusError, err
	}

	c.sessions.Install(creds)
	c.logger.InfoContext(ctx, "oauth login completed", "provider", provider, "user_id", creds.User.ID)
	return StatusDone, nil
}
