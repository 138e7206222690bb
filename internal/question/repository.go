// Package question provides the question catalog model and repository.
package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/quizme/internal/quizerr"
)

// Question is an immutable content entity. Content edits are managed outside
// the quiz flow.
type Question struct {
	ID        int64     `db:"id"`
	Text      string    `db:"question"`
	Answer    string    `db:"answer"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// QuestionTag links a question to a tag. Its enabled flag is curator-facing
// and independent from the user's subscription flag: a link can be switched
// off without touching the tag itself.
type QuestionTag struct {
	ID         int64     `db:"id"`
	QuestionID int64     `db:"question_id"`
	TagID      int64     `db:"tag_id"`
	Enabled    bool      `db:"enabled"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Candidate is a question eligible for selection together with its recency
// signal. LastAttemptAt is nil when nobody has ever attempted the question.
type Candidate struct {
	Question
	LastAttemptAt *time.Time `db:"last_attempt_at"`
}

// QuestionRepository defines operations for managing questions and their tag links.
type QuestionRepository interface {
	FindAll(ctx context.Context) ([]Question, error)
	FindByID(ctx context.Context, id int64) (*Question, error)
	Create(ctx context.Context, q *Question, tagIDs []int64) error
	FindCandidates(ctx context.Context, userID int64) ([]Candidate, error)
	SetLinkEnabled(ctx context.Context, questionID, tagID int64, enabled bool) error
	CreateLink(ctx context.Context, link *QuestionTag) error
}

// DBQuestionRepository implements QuestionRepository using MySQL.
type DBQuestionRepository struct {
	db *sqlx.DB
}

// NewDBQuestionRepository creates a new DBQuestionRepository.
func NewDBQuestionRepository(db *sqlx.DB) *DBQuestionRepository {
	return &DBQuestionRepository{db: db}
}

// FindAll returns all questions ordered by id.
func (r *DBQuestionRepository) FindAll(ctx context.Context) ([]Question, error) {
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions, "SELECT * FROM questions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions) > %w", err)
	}
	return questions, nil
}

// FindByID returns the question with the given id, or nil if not found.
func (r *DBQuestionRepository) FindByID(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := r.db.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(question) > %w", err)
	}
	return &q, nil
}

// Create inserts a question with enabled links to the given tags in a transaction.
func (r *DBQuestionRepository) Create(ctx context.Context, q *Question, tagIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO questions (question, answer) VALUES (?, ?)",
		q.Text, q.Answer)
	if err != nil {
		return fmt.Errorf("tx.ExecContext(insert question) > %w", err)
	}
	questionID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	q.ID = questionID

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO question_tags (question_id, tag_id, enabled) VALUES (?, ?, TRUE)",
			questionID, tagID)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(insert question_tag) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// FindCandidates returns every question reachable through an enabled
// question-tag link whose tag the user has enabled, each annotated with the
// newest attempt time across all users. The recency signal is deliberately
// not scoped to the acting user. A single statement keeps the read on one
// consistent snapshot.
func (r *DBQuestionRepository) FindCandidates(ctx context.Context, userID int64) ([]Candidate, error) {
	var candidates []Candidate
	query := `SELECT q.id, q.question, q.answer, q.created_at, q.updated_at,
			MAX(a.created_at) AS last_attempt_at
		FROM questions q
		JOIN question_tags qt ON qt.question_id = q.id AND qt.enabled = TRUE
		JOIN user_tags ut ON ut.tag_id = qt.tag_id AND ut.user_id = ? AND ut.enabled = TRUE
		LEFT JOIN attempts a ON a.question_id = q.id
		GROUP BY q.id, q.question, q.answer, q.created_at, q.updated_at`
	if err := r.db.SelectContext(ctx, &candidates, query, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(candidates) > %w", err)
	}
	return candidates, nil
}

// SetLinkEnabled toggles a question-tag link. Returns ErrNotFound when no
// link exists for the pair.
func (r *DBQuestionRepository) SetLinkEnabled(ctx context.Context, questionID, tagID int64, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE question_tags SET enabled = ? WHERE question_id = ? AND tag_id = ?",
		enabled, questionID, tagID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update question_tag) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("question %d tag %d link: %w", questionID, tagID, quizerr.ErrNotFound)
	}
	return nil
}

// CreateLink inserts a question-tag link.
func (r *DBQuestionRepository) CreateLink(ctx context.Context, link *QuestionTag) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO question_tags (question_id, tag_id, enabled) VALUES (?, ?, ?)",
		link.QuestionID, link.TagID, link.Enabled)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question_tag) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	link.ID = id
	return nil
}
