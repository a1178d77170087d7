package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wagetrack/internal/db"
	"wagetrack/internal/domain"
)

// SQLiteWageRepo implements WageRepo using a SQLite database.
type SQLiteWageRepo struct {
	db db.DBTX
}

// NewSQLiteWageRepo creates a new SQLiteWageRepo.
func NewSQLiteWageRepo(db db.DBTX) *SQLiteWageRepo {
	return &SQLiteWageRepo{db: db}
}

func (r *SQLiteWageRepo) Get(ctx context.Context, userID string) (*domain.WageSetting, error) {
	query := `SELECT user_id, hourly_wage, updated_at FROM wage_settings WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var w domain.WageSetting
	var updatedAtStr string
	if err := row.Scan(&w.UserID, &w.HourlyWage, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wage setting: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wage setting: %w", err)
	}

	var err error
	w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}

func (r *SQLiteWageRepo) Set(ctx context.Context, w *domain.WageSetting) error {
	query := `INSERT INTO wage_settings (user_id, hourly_wage, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET hourly_wage = excluded.hourly_wage, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		w.UserID,
		w.HourlyWage,
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting wage setting: %w", err)
	}
	return nil
}
