package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/repcoach/internal/db"
	"github.com/alexanderramin/repcoach/internal/domain"
)

// SQLiteChatRepo implements ChatRepo over chat_messages and chat_sessions.
type SQLiteChatRepo struct {
	db db.DBTX
}

// NewSQLiteChatRepo creates a new SQLiteChatRepo.
func NewSQLiteChatRepo(conn db.DBTX) *SQLiteChatRepo {
	return &SQLiteChatRepo{db: conn}
}

func (r *SQLiteChatRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, user_id, session_id, message, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.SessionID,
		m.Message,
		m.Response,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, user_id, session_id, message, response, created_at FROM (
			SELECT rowid AS rid, * FROM chat_messages
			WHERE user_id = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		) ORDER BY created_at ASC, rid ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.Message, &m.Response, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return out, nil
}

func (r *SQLiteChatRepo) GetSessionID(ctx context.Context, userID string) (string, error) {
	var sid string
	err := r.db.QueryRowContext(ctx, `SELECT session_id FROM chat_sessions WHERE user_id = ?`, userID).Scan(&sid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("chat session for %s: %w", userID, ErrNotFound)
		}
		return "", fmt.Errorf("loading chat session: %w", err)
	}
	return sid, nil
}

// PutSessionID stores the user's session id. An existing id is kept, so
// concurrent first messages agree on one session.
func (r *SQLiteChatRepo) PutSessionID(ctx context.Context, userID, sessionID string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (user_id, session_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, sessionID, formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("storing chat session: %w", err)
	}
	return nil
}
