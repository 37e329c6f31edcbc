package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Gateway        = (*GatewayStub)(nil)
	_ ports.ChallengeStore = (*ChallengeStoreStub)(nil)
)

// GatewayStub is a func-field double for the backend gateway. Unset funcs
// return zero values; call counts are tracked for ordering assertions.
type GatewayStub struct {
	mu sync.Mutex

	LoginFunc    func(ctx context.Context, email, password string) (ports.Credentials, error)
	ProfileFunc  func(ctx context.Context) (domainauth.User, error)
	RefreshFunc  func(ctx context.Context) (domainauth.Tokens, error)
	LogoutFunc   func(ctx context.Context) error
	ExchangeFunc func(ctx context.Context, provider, code, state string) (ports.Credentials, error)

	// Calls records the method names in invocation order.
	Calls []string
}

func (g *GatewayStub) record(name string) {
	g.mu.Lock()
	g.Calls = append(g.Calls, name)
	g.mu.Unlock()
}

// CallNames returns a copy of the recorded call order.
func (g *GatewayStub) CallNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Calls))
	copy(out, g.Calls)
	return out
}

func (g *GatewayStub) LoginWithPassword(ctx context.Context, email, password string) (ports.Credentials, error) {
	g.record("LoginWithPassword")
	if g.LoginFunc != nil {
		return g.LoginFunc(ctx, email, password)
	}
	return ports.Credentials{}, nil
}

func (g *GatewayStub) FetchProfile(ctx context.Context) (domainauth.User, error) {
	g.record("FetchProfile")
	if g.ProfileFunc != nil {
		return g.ProfileFunc(ctx)
	}
	return domainauth.User{}, nil
}

func (g *GatewayStub) Refresh(ctx context.Context) (domainauth.Tokens, error) {
	g.record("Refresh")
	if g.RefreshFunc != nil {
		return g.RefreshFunc(ctx)
	}
	return domainauth.Tokens{}, nil
}

func (g *GatewayStub) Logout(ctx context.Context) error {
	g.record("Logout")
	if g.LogoutFunc != nil {
		return g.LogoutFunc(ctx)
	}
	return nil
}

func (g *GatewayStub) ExchangeOAuthCode(ctx context.Context, provider, code, state string) (ports.Credentials, error) {
	g.record("ExchangeOAuthCode")
	if g.ExchangeFunc != nil {
		return g.ExchangeFunc(ctx, provider, code, state)
	}
	return ports.Credentials{}, nil
}

// ChallengeStoreStub is a func-field double for the challenge store.
// Unset funcs behave like an empty in-memory store.
type ChallengeStoreStub struct {
	PutFunc  func(ctx context.Context, state string) error
	TakeFunc func(ctx context.Context) (string, error)

	mu    sync.Mutex
	state string
}

func (s *ChallengeStoreStub) Put(ctx context.Context, state string) error {
	if s.PutFunc != nil {
		return s.PutFunc(ctx, state)
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

func (s *ChallengeStoreStub) Take(ctx context.Context) (string, error) {
	if s.TakeFunc != nil {
		return s.TakeFunc(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	s.state = ""
	if state == "" {
		return "", ports.ErrNoChallenge
	}
	return state, nil
}
