package authsession

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process token store. Expired tokens are dropped
// lazily on lookup.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Token)}
}

func (m *MemoryStore) Create(_ context.Context, t Token) error {
	if t.ID == "" || t.UserID == "" {
		return fmt.Errorf("authsession: missing token id or user id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.ID] = t
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Token, error) {
	m.mu.RLock()
	t, ok := m.tokens[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(t.ExpiresAt) {
		m.mu.Lock()
		delete(m.tokens, id)
		m.mu.Unlock()
		return nil, nil
	}
	return &t, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
