package repository

import (
	"context"
	"fmt"
	"time"

	"wagetrack/internal/db"
	"wagetrack/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, created_at) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}
