// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulohdf/animedex/internal/platform/dberr"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, role, enabled, created_at
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Enabled,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, password_hash, role, enabled, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (username) DO NOTHING
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Enabled,
	).Scan(&user.ID, &user.CreatedAt)

	// ON CONFLICT DO NOTHING returns no row when the username already exists;
	// seeding treats that as success.
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
