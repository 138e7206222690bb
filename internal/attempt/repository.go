// Package attempt provides the append-only attempt log.
package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Attempt is one submission of an answer. Rows are never updated or deleted;
// the attempt text may be empty when the user skips straight to the answer.
type Attempt struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	QuestionID int64     `db:"question_id"`
	Text       string    `db:"attempt"`
	CreatedAt  time.Time `db:"created_at"`
}

// AttemptRepository defines operations for the attempt log.
type AttemptRepository interface {
	Create(ctx context.Context, a *Attempt) error
	FindByID(ctx context.Context, id int64) (*Attempt, error)
	FindByUserAndQuestion(ctx context.Context, userID, questionID int64) ([]Attempt, error)
}

// DBAttemptRepository implements AttemptRepository using MySQL.
type DBAttemptRepository struct {
	db *sqlx.DB
}

// NewDBAttemptRepository creates a new DBAttemptRepository.
func NewDBAttemptRepository(db *sqlx.DB) *DBAttemptRepository {
	return &DBAttemptRepository{db: db}
}

// Create inserts a new attempt.
func (r *DBAttemptRepository) Create(ctx context.Context, a *Attempt) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO attempts (user_id, question_id, attempt) VALUES (?, ?, ?)",
		a.UserID, a.QuestionID, a.Text)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert attempt) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	a.ID = id
	return nil
}

// FindByID returns the attempt with the given id, or nil if not found.
func (r *DBAttemptRepository) FindByID(ctx context.Context, id int64) (*Attempt, error) {
	var a Attempt
	err := r.db.GetContext(ctx, &a, "SELECT * FROM attempts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(attempt) > %w", err)
	}
	return &a, nil
}

// FindByUserAndQuestion returns a user's attempts at a question, oldest first.
func (r *DBAttemptRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID int64) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT * FROM attempts WHERE user_id = ? AND question_id = ? ORDER BY created_at",
		userID, questionID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempts) > %w", err)
	}
	return attempts, nil
}
