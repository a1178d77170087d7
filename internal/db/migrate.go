package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS wage_settings (
		user_id     TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		hourly_wage INTEGER NOT NULL CHECK(hourly_wage > 0),
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_time    TEXT NOT NULL,
		end_time      TEXT,
		hourly_wage   INTEGER NOT NULL CHECK(hourly_wage > 0),
		earned_amount INTEGER
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON work_sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON work_sessions(start_time)`,

	// The storage-level guarantee behind "at most one open session per
	// user": a second open insert for the same user fails the unique
	// constraint even when multiple processes share the database.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open
		ON work_sessions(user_id) WHERE end_time IS NULL`,
}
