// Package tag provides the tag catalog model and repository.
package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Tag is a catalog entry created by an administrator. Tags are shared across
// users and questions and are never deleted in normal flow.
type Tag struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TagRepository defines operations for managing the tag catalog.
type TagRepository interface {
	FindAll(ctx context.Context) ([]Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
	Create(ctx context.Context, t *Tag) error
}

// DBTagRepository implements TagRepository using MySQL.
type DBTagRepository struct {
	db *sqlx.DB
}

// NewDBTagRepository creates a new DBTagRepository.
func NewDBTagRepository(db *sqlx.DB) *DBTagRepository {
	return &DBTagRepository{db: db}
}

// FindAll returns all tags ordered by name.
func (r *DBTagRepository) FindAll(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, "SELECT * FROM tags ORDER BY name"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tags) > %w", err)
	}
	return tags, nil
}

// FindByName returns the tag with the given name, or nil if not found.
func (r *DBTagRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	err := r.db.GetContext(ctx, &t, "SELECT * FROM tags WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(tag) > %w", err)
	}
	return &t, nil
}

// Create inserts a new tag.
func (r *DBTagRepository) Create(ctx context.Context, t *Tag) error {
	result, err := r.db.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", t.Name)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert tag) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	t.ID = id
	return nil
}
