// Package user provides the minimal account records other tables hang off.
// Authentication lives outside this service; rows here only anchor ownership.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserRepository defines operations for user records.
type UserRepository interface {
	Create(ctx context.Context, email string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// DBUserRepository implements UserRepository using MySQL.
type DBUserRepository struct {
	db *sqlx.DB
}

// NewDBUserRepository creates a new DBUserRepository.
func NewDBUserRepository(db *sqlx.DB) *DBUserRepository {
	return &DBUserRepository{db: db}
}

// Create inserts a new user.
func (r *DBUserRepository) Create(ctx context.Context, email string) (*User, error) {
	result, err := r.db.ExecContext(ctx, "INSERT INTO users (email) VALUES (?)", email)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext(insert user) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return &User{ID: id, Email: email}, nil
}

// FindByEmail returns the user with the given email, or nil if not found.
func (r *DBUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(user) > %w", err)
	}
	return &u, nil
}
