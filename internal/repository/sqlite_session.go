package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"wagetrack/internal/db"
	"wagetrack/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (user_id, start_time, end_time, hourly_wage, earned_amount)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.UserID,
		s.StartTime.Format(timeLayout),
		nullableTimeToString(s.EndTime, timeLayout),
		s.HourlyWage,
		nullableIntToValue(s.EarnedAmount),
	)
	if err != nil {
		// The partial unique index on (user_id) WHERE end_time IS NULL
		// rejects a second open session even across processes.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("session already started: %w", domain.ErrConflict)
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted session id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, userID string, id int64) (*domain.WorkSession, error) {
	query := `SELECT id, user_id, start_time, end_time, hourly_wage, earned_amount
		FROM work_sessions WHERE user_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, userID, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) GetOpen(ctx context.Context, userID string) (*domain.WorkSession, error) {
	query := `SELECT id, user_id, start_time, end_time, hourly_wage, earned_amount
		FROM work_sessions WHERE user_id = ? AND end_time IS NULL`
	row := r.db.QueryRowContext(ctx, query, userID)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.WorkSession, error) {
	query := `SELECT id, user_id, start_time, end_time, hourly_wage, earned_amount
		FROM work_sessions WHERE user_id = ? ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.WorkSession) error {
	query := `UPDATE work_sessions
		SET start_time = ?, end_time = ?, earned_amount = ?
		WHERE user_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.StartTime.Format(timeLayout),
		nullableTimeToString(s.EndTime, timeLayout),
		nullableIntToValue(s.EarnedAmount),
		s.UserID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work session: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	query := `DELETE FROM work_sessions WHERE user_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking deleted rows: %w", err)
	}
	return n > 0, nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startStr string
	var endStr sql.NullString
	var earned sql.NullInt64

	err := row.Scan(&s.ID, &s.UserID, &startStr, &endStr, &s.HourlyWage, &earned)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work session: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	return r.populateSession(&s, startStr, endStr, earned)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var startStr string
		var endStr sql.NullString
		var earned sql.NullInt64

		if err := rows.Scan(&s.ID, &s.UserID, &startStr, &endStr, &s.HourlyWage, &earned); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, err := r.populateSession(&s, startStr, endStr, earned)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a WorkSession after scanning raw values.
func (r *SQLiteSessionRepo) populateSession(s *domain.WorkSession, startStr string, endStr sql.NullString, earned sql.NullInt64) (*domain.WorkSession, error) {
	var err error
	s.StartTime, err = time.Parse(timeLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.EndTime = parseNullableTime(endStr, timeLayout)
	s.EarnedAmount = nullableIntFromSQL(earned)
	return s, nil
}
