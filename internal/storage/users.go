package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a player known by the id of whoever authenticated them: a
// token subject, or "ssh:<name>" for the terminal arcade.
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpsertUser returns the user with externalID, creating it on first sight.
func (s *Store) UpsertUser(ctx context.Context, externalID string) (User, error) {
	if externalID == "" {
		return User{}, fmt.Errorf("storage: upsert user: empty external id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, external_id, role, created_at) VALUES (?, ?, 'user', ?)
		 ON CONFLICT (external_id) DO NOTHING`,
		newID(), externalID, now(),
	)
	if err != nil {
		return User{}, fmt.Errorf("storage: upsert user: %w", err)
	}
	return s.UserByExternalID(ctx, externalID)
}

// UserByExternalID looks a user up without creating it.
func (s *Store) UserByExternalID(ctx context.Context, externalID string) (User, error) {
	var (
		u       User
		created any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, external_id, role, created_at FROM users WHERE external_id = ?`,
		externalID,
	).Scan(&u.ID, &u.ExternalID, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("storage: user %q: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: user: %w", err)
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}
