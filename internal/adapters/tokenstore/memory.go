package tokenstore

// Package tokenstore holds the current bearer token in process memory.
// There is deliberately no persistence: a restart starts unauthenticated and
// the session bootstrapper recovers the session from the refresh cookie.

import "sync"

// Memory is an in-memory token store safe for concurrent use.
// The zero value is ready to use.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// New returns an empty in-memory token store.
func New() *Memory {
	return &Memory{}
}

// Set replaces the current token. An empty string clears it.
func (m *Memory) Set(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

// Get returns the current token, or the empty string when none is held.
func (m *Memory) Get() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
