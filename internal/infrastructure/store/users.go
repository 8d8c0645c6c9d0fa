package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cenoskoczek/backend/internal/domain"
)

// CreateUser inserts a new user, enforcing email uniqueness.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	var existing int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = ?", user.Email).Scan(&existing)
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: lookup email: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, name) VALUES (?, ?)", user.Email, user.Name)
	if err != nil {
		return fmt.Errorf("store: insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Email, &user.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user: %w", err)
	}
	return &user, nil
}
