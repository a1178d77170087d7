package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wagetrack/internal/db"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, table := range []string{"users", "wage_settings", "work_sessions"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	var idx string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_sessions_open'`,
	).Scan(&idx)
	require.NoError(t, err, "partial unique index on open sessions should exist")
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// OpenDB already migrated once; a second run must be a no-op.
	assert.NoError(t, db.Migrate(database))
}
