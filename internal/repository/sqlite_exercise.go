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

// SQLiteExerciseRepo implements ExerciseRepo using the exercise_history table.
type SQLiteExerciseRepo struct {
	db db.DBTX
}

// NewSQLiteExerciseRepo creates a new SQLiteExerciseRepo.
func NewSQLiteExerciseRepo(conn db.DBTX) *SQLiteExerciseRepo {
	return &SQLiteExerciseRepo{db: conn}
}

const exerciseColumns = `id, user_id, exercise_id, exercise_type, reps, duration, calories_burned, completed_at`

func (r *SQLiteExerciseRepo) Create(ctx context.Context, rec *domain.ExerciseRecord) error {
	query := `INSERT INTO exercise_history (` + exerciseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.ExerciseID,
		rec.ExerciseType,
		rec.Reps,
		rec.DurationSec,
		rec.Calories,
		formatTime(rec.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting exercise record: %w", err)
	}
	return nil
}

func (r *SQLiteExerciseRepo) GetByID(ctx context.Context, id string) (*domain.ExerciseRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercise_history WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise record %s: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteExerciseRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ExerciseRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + exerciseColumns + ` FROM exercise_history
		WHERE user_id = ? ORDER BY completed_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing exercise history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *SQLiteExerciseRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.ExerciseRecord, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercise_history
		WHERE user_id = ? AND completed_at >= ?
		ORDER BY completed_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing recent exercise history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *SQLiteExerciseRepo) Stats(ctx context.Context, userID string, weekStart time.Time) (*domain.Stats, error) {
	query := `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN completed_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(calories_burned), 0),
			COALESCE(SUM(duration), 0)
		FROM exercise_history WHERE user_id = ?`
	var s domain.Stats
	err := r.db.QueryRowContext(ctx, query, formatTime(weekStart), userID).Scan(
		&s.TotalWorkouts,
		&s.WeeklyWorkouts,
		&s.TotalCalories,
		&s.TotalDurationSec,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregating exercise stats: %w", err)
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.ExerciseRecord, error) {
	var rec domain.ExerciseRecord
	var completedAt string
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ExerciseID,
		&rec.ExerciseType,
		&rec.Reps,
		&rec.DurationSec,
		&rec.Calories,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning exercise record: %w", err)
	}
	if rec.CompletedAt, err = parseTime(completedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]*domain.ExerciseRecord, error) {
	var out []*domain.ExerciseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercise history: %w", err)
	}
	return out, nil
}
