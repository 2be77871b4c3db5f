package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id     TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		age         INTEGER NOT NULL DEFAULT 0 CHECK(age >= 0),
		height_cm   REAL NOT NULL DEFAULT 0 CHECK(height_cm >= 0),
		weight_kg   REAL NOT NULL DEFAULT 0 CHECK(weight_kg >= 0),
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_history (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		exercise_type    TEXT NOT NULL,
		reps             INTEGER NOT NULL CHECK(reps >= 0),
		duration         INTEGER NOT NULL CHECK(duration >= 0),
		calories_burned  INTEGER NOT NULL CHECK(calories_burned >= 0),
		completed_at     TEXT NOT NULL
	)`,
	`ALTER TABLE exercise_history ADD COLUMN exercise_id TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_history_user_completed ON exercise_history(user_id, completed_at)`,

	`CREATE TABLE IF NOT EXISTS chat_sessions (
		user_id     TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL UNIQUE,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		message     TEXT NOT NULL,
		response    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`ALTER TABLE chat_messages ADD COLUMN session_id TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_chat_user_created ON chat_messages(user_id, created_at)`,
}

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillChatSessionIDs(db); err != nil {
		return fmt.Errorf("backfilling chat session ids: %w", err)
	}
	return nil
}

// migrateBackfillChatSessionIDs attaches messages stored before session ids
// were recorded per message to the user's current session.
func migrateBackfillChatSessionIDs(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `UPDATE chat_messages
		SET session_id = (SELECT s.session_id FROM chat_sessions s WHERE s.user_id = chat_messages.user_id)
		WHERE session_id = ''
		  AND EXISTS (SELECT 1 FROM chat_sessions s WHERE s.user_id = chat_messages.user_id)`)
	if err != nil {
		return fmt.Errorf("updating chat_messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing backfill: %w", err)
	}
	committed = true
	return nil
}
