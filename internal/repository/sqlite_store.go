package repository

import (
	"context"
	"database/sql"

	"wagetrack/internal/db"
)

// SQLiteStore is the durable Store implementation. Plain reads go straight
// to the pool; WithinTx hands the callback repositories bound to one
// transaction so multi-step mutations commit or roll back as a unit.
type SQLiteStore struct {
	users    *SQLiteUserRepo
	wages    *SQLiteWageRepo
	sessions *SQLiteSessionRepo
	uow      db.UnitOfWork
}

// NewSQLiteStore wires repositories and a unit of work over the given database.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		users:    NewSQLiteUserRepo(database),
		wages:    NewSQLiteWageRepo(database),
		sessions: NewSQLiteSessionRepo(database),
		uow:      db.NewSQLiteUnitOfWork(database),
	}
}

func (s *SQLiteStore) Users() UserRepo       { return s.users }
func (s *SQLiteStore) Wages() WageRepo       { return s.wages }
func (s *SQLiteStore) Sessions() SessionRepo { return s.sessions }

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, Repos{
			Users:    NewSQLiteUserRepo(tx),
			Wages:    NewSQLiteWageRepo(tx),
			Sessions: NewSQLiteSessionRepo(tx),
		})
	})
}

var _ Store = (*SQLiteStore)(nil)
