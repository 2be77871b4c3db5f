package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"profiles", "exercise_history", "chat_messages", "chat_sessions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_history_user_completed", "idx_chat_user_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddedColumnsPresent(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO exercise_history (id, user_id, exercise_id, exercise_type, reps, duration, calories_burned, completed_at)
		VALUES ('h1', 'u1', '1', 'Push Ups', 10, 100, 10, '2026-01-01T00:00:00.000Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO chat_messages (id, user_id, session_id, message, response, created_at)
		VALUES ('m1', 'u1', 's1', 'hi', 'hello', '2026-01-01T00:00:00.000Z')`)
	require.NoError(t, err)
}

func TestMigrate_RejectsNegativeReps(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO exercise_history (id, user_id, exercise_type, reps, duration, calories_burned, completed_at)
		VALUES ('h1', 'u1', 'Push Ups', -1, 100, 10, '2026-01-01T00:00:00.000Z')`)
	assert.Error(t, err)
}

func TestMigrate_BackfillsChatSessionIDs(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO chat_sessions (user_id, session_id, created_at) VALUES ('u1', 'session-u1-1', '2026-01-01T00:00:00.000Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO chat_messages (id, user_id, message, response, created_at)
		VALUES ('m1', 'u1', 'hi', 'hello', '2026-01-01T00:00:00.000Z'),
		       ('m2', 'u2', 'hi', 'hello', '2026-01-01T00:00:00.000Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var sid string
	require.NoError(t, db.QueryRow(`SELECT session_id FROM chat_messages WHERE id = 'm1'`).Scan(&sid))
	assert.Equal(t, "session-u1-1", sid)
	require.NoError(t, db.QueryRow(`SELECT session_id FROM chat_messages WHERE id = 'm2'`).Scan(&sid))
	assert.Equal(t, "", sid, "users without a session are left alone")
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "repcoach.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
