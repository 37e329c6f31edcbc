package challenge

// Package challenge provides stores for the pending OAuth CSRF state.
// The state is written when a provider flow is initiated and consumed exactly
// once by the callback handler; the two entry points share nothing else.

import (
	"context"
	"sync"
	"time"

	"github.com/arrendo/arrendo-ui/internal/ports"
)

// MemoryStore keeps the pending challenge in process memory.
// It holds at most one challenge at a time, mirroring the single fixed
// storage slot the flow requires.
type MemoryStore struct {
	mu        sync.Mutex
	state     string
	expiresAt time.Time
	ttl       time.Duration

	now func() time.Time // test seam
}

// NewMemoryStore creates a memory-backed challenge store. Challenges older
// than ttl are treated as absent.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryStore{ttl: ttl, now: time.Now}
}

// Put stores the state value, replacing any previous challenge.
func (s *MemoryStore) Put(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.expiresAt = s.now().Add(s.ttl)
	return nil
}

// Take returns the stored state and deletes it. A missing or expired
// challenge yields ports.ErrNoChallenge.
func (s *MemoryStore) Take(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	s.state = ""
	if state == "" || s.now().After(s.expiresAt) {
		return "", ports.ErrNoChallenge
	}
	return state, nil
}
