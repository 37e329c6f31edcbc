package session

// Package session owns the application's authentication state. Exactly one
// Manager exists for the lifetime of the process and every mutation funnels
// through its transition function, so a reader can never observe a state
// where the user and the tokens disagree.

import (
	"log/slog"
	"sync"

	domainauth "github.com/arrendo/arrendo-ui/internal/domain/auth"
	"github.com/arrendo/arrendo-ui/internal/ports"
)

// Manager is the single writer target for authentication state.
type Manager struct {
	mu         sync.Mutex
	state      domainauth.State
	generation uint64
	changed    chan struct{}

	resolved    chan struct{}
	resolveOnce sync.Once

	tokens ports.TokenStore
	logger *slog.Logger
}

// NewManager creates a Manager in the loading state. The token store is kept
// in lockstep with the state: whenever the state is replaced, the store is
// updated under the same lock.
func NewManager(tokens ports.TokenStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		state:    domainauth.State{Loading: true},
		changed:  make(chan struct{}),
		resolved: make(chan struct{}),
		tokens:   tokens,
		logger:   logger,
	}
}

// Snapshot returns the current state. The pointed-to values are never
// mutated after installation, so the snapshot is safe to read freely.
func (m *Manager) Snapshot() domainauth.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Generation returns the current state generation. Asynchronous flows capture
// it before they start and pass it back to InstallIfCurrent/ClearIfCurrent so
// a superseded result cannot clobber newer state.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// Resolved returns a channel that is closed once the initial loading phase is
// over, i.e. after the first state transition. It never reopens.
func (m *Manager) Resolved() <-chan struct{} {
	return m.resolved
}

// Changed returns a channel that is closed on the next state transition.
// Callers re-acquire it after each notification.
func (m *Manager) Changed() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changed
}

// Loading reports whether the initial bootstrap is still in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Loading
}

// User returns the current user, if any.
func (m *Manager) User() (domainauth.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.User == nil {
		return domainauth.User{}, false
	}
	return *m.state.User, true
}

// HasRole reports whether the current user holds at least one of the given
// roles. It is false whenever no user is present.
func (m *Manager) HasRole(roles ...domainauth.Role) bool {
	user, ok := m.User()
	if !ok {
		return false
	}
	return user.HasRole(roles...)
}

// Install replaces the state with an authenticated session.
func (m *Manager) Install(creds ports.Credentials) {
	m.mu.Lock()
	user := creds.User
	tokens := creds.Tokens
	m.transitionLocked(domainauth.State{User: &user, Tokens: &tokens})
	m.mu.Unlock()
}

// Clear replaces the state with the logged-out state and drops the token.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.transitionLocked(domainauth.State{})
	m.mu.Unlock()
}

// InstallIfCurrent installs the session only when the state has not moved on
// since gen was captured. When it has, the result is discarded and the token
// store is re-synced to the current state, undoing any token side effect of
// the superseded operation.
func (m *Manager) InstallIfCurrent(gen uint64, creds ports.Credentials) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		m.syncTokenLocked()
		return false
	}
	user := creds.User
	tokens := creds.Tokens
	m.transitionLocked(domainauth.State{User: &user, Tokens: &tokens})
	return true
}

// ClearIfCurrent clears the session only when the state has not moved on
// since gen was captured.
func (m *Manager) ClearIfCurrent(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		m.syncTokenLocked()
		return false
	}
	m.transitionLocked(domainauth.State{})
	return true
}

// transitionLocked is the single funnel for state changes. It replaces the
// whole state, keeps the token store in lockstep, bumps the generation, and
// wakes subscribers. Loading flips to false on the first transition and
// never reverts.
func (m *Manager) transitionLocked(next domainauth.State) {
	next.Loading = false
	m.state = next
	m.generation++
	m.syncTokenLocked()

	close(m.changed)
	m.changed = make(chan struct{})
	m.resolveOnce.Do(func() { close(m.resolved) })
}

// syncTokenLocked aligns the token store with the current state.
func (m *Manager) syncTokenLocked() {
	if m.tokens == nil {
		return
	}
	if m.state.Tokens != nil {
		m.tokens.Set(m.state.Tokens.AccessToken)
	} else {
		m.tokens.Set("")
	}
}
