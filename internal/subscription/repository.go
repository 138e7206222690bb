// Package subscription manages per-user tag subscriptions.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/quizme/internal/database"
)

// UserTag represents one user's interest in one tag. There is exactly one row
// per (user, tag) pair, enforced by a unique key.
type UserTag struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	TagID     int64     `db:"tag_id"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	TagName   string    `db:"tag_name"`
}

// Update sets the enabled flag for one subscribed tag.
type Update struct {
	TagID   int64 `json:"tag_id"`
	Enabled bool  `json:"enabled"`
}

// UserTagRepository defines operations for managing user tag subscriptions.
type UserTagRepository interface {
	SeedMissing(ctx context.Context, userID int64) error
	FindByUser(ctx context.Context, userID int64) ([]UserTag, error)
	ApplyEnabled(ctx context.Context, userID int64, updates []Update) error
}

// DBUserTagRepository implements UserTagRepository using MySQL.
type DBUserTagRepository struct {
	db *sqlx.DB
}

// NewDBUserTagRepository creates a new DBUserTagRepository.
func NewDBUserTagRepository(db *sqlx.DB) *DBUserTagRepository {
	return &DBUserTagRepository{db: db}
}

// SeedMissing creates a disabled subscription for every catalog tag the user
// lacks one for. The upsert keeps concurrent first visits from inserting
// duplicate rows.
func (r *DBUserTagRepository) SeedMissing(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_tags (user_id, tag_id, enabled)
		SELECT ?, t.id, FALSE FROM tags t
		ON DUPLICATE KEY UPDATE user_tags.tag_id = user_tags.tag_id`,
		userID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(seed user_tags) > %w", err)
	}
	return nil
}

// FindByUser returns the user's subscriptions with tag names, ordered by tag name.
func (r *DBUserTagRepository) FindByUser(ctx context.Context, userID int64) ([]UserTag, error) {
	var userTags []UserTag
	query := `SELECT ut.*, t.name AS tag_name FROM user_tags ut
		JOIN tags t ON ut.tag_id = t.id
		WHERE ut.user_id = ?
		ORDER BY t.name`
	if err := r.db.SelectContext(ctx, &userTags, query, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(user_tags) > %w", err)
	}
	return userTags, nil
}

// ApplyEnabled sets enabled flags for the given tags in one transaction.
// Callers validate the batch first; either every update lands or none do.
func (r *DBUserTagRepository) ApplyEnabled(ctx context.Context, userID int64, updates []Update) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, update := range updates {
			_, err := tx.ExecContext(ctx,
				"UPDATE user_tags SET enabled = ? WHERE user_id = ? AND tag_id = ?",
				update.Enabled, userID, update.TagID)
			if err != nil {
				return fmt.Errorf("tx.ExecContext(update user_tag %d) > %w", update.TagID, err)
			}
		}
		return nil
	})
}
