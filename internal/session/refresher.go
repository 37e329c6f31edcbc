package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arrendo/arrendo-ui/internal/apperrors"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

const (
	// minRefreshWait floors the wait between refresh attempts so a clock
	// skew or an already-expired token cannot produce a hot loop.
	minRefreshWait = 30 * time.Second

	// fallbackRefreshInterval is used when the access token carries no
	// readable expiry (opaque token).
	fallbackRefreshInterval = 10 * time.Minute
)

// Refresher keeps an established session alive by renewing the access token
// shortly before it expires. Without it the token would expire silently and
// the next backend call would fail mid-screen.
type Refresher struct {
	gateway  ports.Gateway
	sessions *Manager
	logger   *slog.Logger

	// lead is how long before expiry the token is renewed.
	lead time.Duration

	minWait  time.Duration
	fallback time.Duration
}

// NewRefresher constructs a Refresher. A non-positive lead defaults to one
// minute.
func NewRefresher(gateway ports.Gateway, sessions *Manager, lead time.Duration, logger *slog.Logger) *Refresher {
	if lead <= 0 {
		lead = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
		lead:     lead,
		minWait:  minRefreshWait,
		fallback: fallbackRefreshInterval,
	}
}

// Run blocks until ctx is canceled, renewing the token whenever a session is
// established. State transitions (login, logout) reset the schedule.
func (r *Refresher) Run(ctx context.Context) error {
	for {
		// Subscribe before reading the state: a transition landing between
		// the two calls then closes the channel we hold, so the stale
		// snapshot is re-read on the next iteration instead of stranding
		// the loop.
		changed := r.sessions.Changed()
		snap := r.sessions.Snapshot()

		if snap.Tokens == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-changed:
				continue
			}
		}

		wait := r.fallback
		if exp, ok := tokenExpiry(snap.Tokens.AccessToken); ok {
			wait = time.Until(exp) - r.lead
		}
		if wait < r.minWait {
			wait = r.minWait
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-changed:
			timer.Stop()
			continue
		case <-timer.C:
		}

		r.renew(ctx)
	}
}

// renew performs one refresh attempt and reconciles the session state.
func (r *Refresher) renew(ctx context.Context) {
	gen := r.sessions.Generation()

	tokens, err := r.gateway.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if apperrors.IsCode(err, apperrors.ErrCodeUnauthorized) {
			// The server session is gone; stop pretending otherwise.
			r.logger.WarnContext(ctx, "session refresh rejected, signing out", "error", err)
			r.sessions.ClearIfCurrent(gen)
			return
		}
		r.logger.WarnContext(ctx, "session refresh failed, will retry", "error", err)
		return
	}

	user, ok := r.sessions.User()
	if !ok {
		// A logout raced the renewal; the stale-generation path re-syncs the
		// token store, undoing the token the gateway just installed.
		r.sessions.ClearIfCurrent(gen)
		return
	}
	if r.sessions.InstallIfCurrent(gen, ports.Credentials{Tokens: tokens, User: user}) {
		r.logger.DebugContext(ctx, "access token renewed")
	}
}

// tokenExpiry reads the exp claim of a JWT access token without verifying
// the signature; the client only schedules around it, it never trusts it for
// authorization decisions.
func tokenExpiry(raw string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
