package session

import (
	"context"
	"log/slog"

	"github.com/arrendo/arrendo-ui/internal/ports"
)

// Bootstrapper attempts to silently resume a session at application start,
// using nothing but the server-held refresh cookie. It is the only component
// that recovers from auth failures locally: any failure ends in a clean
// logged-out state instead of propagating.
type Bootstrapper struct {
	gateway  ports.Gateway
	sessions *Manager
	logger   *slog.Logger
}

// NewBootstrapper constructs a Bootstrapper.
func NewBootstrapper(gateway ports.Gateway, sessions *Manager, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{gateway: gateway, sessions: sessions, logger: logger}
}

// Run performs the bootstrap sequence: refresh, then profile fetch, strictly
// in that order. A canceled context discards the result without touching the
// session state, and a result that arrives after the state has already moved
// on (e.g. the user logged in through the form meanwhile) is discarded too.
func (b *Bootstrapper) Run(ctx context.Context) {
	start := b.sessions.Generation()

	tokens, err := b.gateway.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			b.logger.DebugContext(ctx, "session bootstrap canceled")
			return
		}
		// No valid refresh cookie, unreachable backend, or a bad payload
		// all mean the same thing here: start logged out.
		if b.sessions.ClearIfCurrent(start) {
			b.logger.InfoContext(ctx, "no session to resume", "reason", err)
		}
		return
	}

	user, err := b.gateway.FetchProfile(ctx)
	if err != nil {
		if ctx.Err() != nil {
			b.logger.DebugContext(ctx, "session bootstrap canceled")
			return
		}
		// A token without a resolvable profile is treated as no session.
		if b.sessions.ClearIfCurrent(start) {
			b.logger.WarnContext(ctx, "session resume aborted: profile fetch failed", "error", err)
		}
		return
	}

	if ctx.Err() != nil {
		b.logger.DebugContext(ctx, "session bootstrap canceled")
		return
	}

	if b.sessions.InstallIfCurrent(start, ports.Credentials{Tokens: tokens, User: user}) {
		b.logger.InfoContext(ctx, "session resumed", "user_id", user.ID)
	}
}
