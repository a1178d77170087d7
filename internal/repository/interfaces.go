package repository

import (
	"context"
	"time"

	"wagetrack/internal/domain"
)

type UserRepo interface {
	// Upsert ensures a user record exists. Idempotent; an existing row is
	// left untouched.
	Upsert(ctx context.Context, u *domain.User) error
}

type WageRepo interface {
	Get(ctx context.Context, userID string) (*domain.WageSetting, error)
	// Set replaces the stored wage wholesale.
	Set(ctx context.Context, w *domain.WageSetting) error
}

type SessionRepo interface {
	// Create inserts a new open session and assigns its ID. Fails with
	// domain.ErrConflict if the user already has an open session.
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, userID string, id int64) (*domain.WorkSession, error)
	// GetOpen returns the user's open session, or domain.ErrNotFound.
	GetOpen(ctx context.Context, userID string) (*domain.WorkSession, error)
	// ListByUser returns all of the user's sessions ordered by start time.
	ListByUser(ctx context.Context, userID string) ([]*domain.WorkSession, error)
	// Update overwrites start/end/earned of an existing session.
	Update(ctx context.Context, s *domain.WorkSession) error
	// Delete removes the session, reporting whether it existed.
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}

// Repos bundles the per-backend repositories handed to a transactional
// callback.
type Repos struct {
	Users    UserRepo
	Wages    WageRepo
	Sessions SessionRepo
}

// Store is the facade a storage backend exposes to the service layer:
// plain repositories for reads and single mutations, and WithinTx for
// multi-step mutations that must be one atomic unit.
type Store interface {
	Users() UserRepo
	Wages() WageRepo
	Sessions() SessionRepo
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

const timeLayout = time.RFC3339
