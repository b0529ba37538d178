package conversation

import (
	"context"
	"sync"
)

// Store maps opaque session tokens to sessions. The backing store is
// swappable (memory map, bolt file, redis) without touching orchestration.
// Get returns nil when no session exists for the token.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Put(ctx context.Context, token string, sess *Session) error
	Clear(ctx context.Context, token string) error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token], nil
}

func (m *MemoryStore) Put(_ context.Context, token string, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = sess
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
