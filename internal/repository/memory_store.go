package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wagetrack/internal/domain"
)

// MemoryStore is the in-process Store implementation. One RWMutex guards
// all maps: mutations take the write lock, reads take the read lock and
// hand out copies so callers never observe a partially-mutated session.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	wages    map[string]*domain.WageSetting
	sessions map[string][]*domain.WorkSession
	nextID   map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*domain.User),
		wages:    make(map[string]*domain.WageSetting),
		sessions: make(map[string][]*domain.WorkSession),
		nextID:   make(map[string]int64),
	}
}

func (m *MemoryStore) Users() UserRepo       { return &memUserRepo{store: m, lock: true} }
func (m *MemoryStore) Wages() WageRepo       { return &memWageRepo{store: m, lock: true} }
func (m *MemoryStore) Sessions() SessionRepo { return &memSessionRepo{store: m, lock: true} }

// WithinTx serializes the callback under the write lock. There is no
// rollback for the in-memory backend; each repository mutation is already
// a complete state transition, so a failed callback leaves no half-applied
// session behind.
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, Repos{
		Users:    &memUserRepo{store: m},
		Wages:    &memWageRepo{store: m},
		Sessions: &memSessionRepo{store: m},
	})
}

var _ Store = (*MemoryStore)(nil)

type memUserRepo struct {
	store *MemoryStore
	lock  bool
}

func (r *memUserRepo) Upsert(_ context.Context, u *domain.User) error {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, ok := r.store.users[u.ID]; ok {
		return nil
	}
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

type memWageRepo struct {
	store *MemoryStore
	lock  bool
}

func (r *memWageRepo) Get(_ context.Context, userID string) (*domain.WageSetting, error) {
	if r.lock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	w, ok := r.store.wages[userID]
	if !ok {
		return nil, fmt.Errorf("wage setting: %w", domain.ErrNotFound)
	}
	cp := *w
	return &cp, nil
}

func (r *memWageRepo) Set(_ context.Context, w *domain.WageSetting) error {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	cp := *w
	r.store.wages[w.UserID] = &cp
	return nil
}

type memSessionRepo struct {
	store *MemoryStore
	lock  bool
}

func (r *memSessionRepo) Create(_ context.Context, s *domain.WorkSession) error {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	for _, existing := range r.store.sessions[s.UserID] {
		if existing.Open() {
			return fmt.Errorf("session already started: %w", domain.ErrConflict)
		}
	}
	r.store.nextID[s.UserID]++
	s.ID = r.store.nextID[s.UserID]
	r.store.sessions[s.UserID] = append(r.store.sessions[s.UserID], copySession(s))
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, userID string, id int64) (*domain.WorkSession, error) {
	if r.lock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	for _, s := range r.store.sessions[userID] {
		if s.ID == id {
			return copySession(s), nil
		}
	}
	return nil, fmt.Errorf("work session: %w", domain.ErrNotFound)
}

func (r *memSessionRepo) GetOpen(_ context.Context, userID string) (*domain.WorkSession, error) {
	if r.lock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	for _, s := range r.store.sessions[userID] {
		if s.Open() {
			return copySession(s), nil
		}
	}
	return nil, fmt.Errorf("work session: %w", domain.ErrNotFound)
}

func (r *memSessionRepo) ListByUser(_ context.Context, userID string) ([]*domain.WorkSession, error) {
	if r.lock {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	out := make([]*domain.WorkSession, 0, len(r.store.sessions[userID]))
	for _, s := range r.store.sessions[userID] {
		out = append(out, copySession(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *memSessionRepo) Update(_ context.Context, s *domain.WorkSession) error {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	list := r.store.sessions[s.UserID]
	for i, existing := range list {
		if existing.ID == s.ID {
			list[i] = copySession(s)
			return nil
		}
	}
	return fmt.Errorf("work session: %w", domain.ErrNotFound)
}

func (r *memSessionRepo) Delete(_ context.Context, userID string, id int64) (bool, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	list := r.store.sessions[userID]
	for i, s := range list {
		if s.ID == id {
			r.store.sessions[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// copySession deep-copies a session so stored state and caller state never alias.
func copySession(s *domain.WorkSession) *domain.WorkSession {
	cp := *s
	if s.EndTime != nil {
		end := *s.EndTime
		cp.EndTime = &end
	}
	if s.EarnedAmount != nil {
		earned := *s.EarnedAmount
		cp.EarnedAmount = &earned
	}
	return &cp
}
