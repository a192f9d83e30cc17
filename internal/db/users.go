package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"qnalinks/internal/models"
)

const userColumns = `id, name, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUserByName returns the user whose name matches case-insensitively,
// creating one if no match exists. The upsert is keyed on lower(name), so
// "Ann" and "ann" collapse to the same record and the first writer's casing
// wins. The no-op DO UPDATE makes RETURNING yield the existing row.
func (d *DB) GetOrCreateUserByName(ctx context.Context, name string) (*models.User, error) {
	query := `
		INSERT INTO users (name)
		VALUES ($1)
		ON CONFLICT ((lower(name))) DO UPDATE SET name = users.name
		RETURNING ` + userColumns

	return scanUser(d.Pool.QueryRow(ctx, query, name))
}

// GetUserByName retrieves a user by case-insensitive name match.
// Unlike GetOrCreateUserByName it never creates; this is the login path.
func (d *DB) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(name) = lower($1)`
	return scanUser(d.Pool.QueryRow(ctx, query, name))
}

// GetUserByID retrieves a user by their UUID.
func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(d.Pool.QueryRow(ctx, query, id))
}
