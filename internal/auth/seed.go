// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulohdf/animedex/internal/platform/sec"
)

// SeedCredentials describes the accounts provisioned at startup.
type SeedCredentials struct {
	UserPassword  string
	AdminPassword string
}

// EnsureSeedUsers provisions the default credential records when absent.
//
// Passwords are hashed at boot rather than shipped as precomputed hashes in
// migrations, so rotating a seed password only requires a restart. Existing
// records are never overwritten.
func EnsureSeedUsers(ctx context.Context, repo UserRepository, seeds SeedCredentials, logger *slog.Logger) error {
	accounts := []struct {
		username string
		password string
		role     sec.UserRole
	}{
		{"dev", seeds.UserPassword, sec.RoleUser},
		{"admin", seeds.AdminPassword, sec.RoleAdmin},
	}

	for _, account := range accounts {
		hash, err := sec.HashPassword(account.password)
		if err != nil {
			return fmt.Errorf("auth: seeding %q: %w", account.username, err)
		}

		user := &User{
			Username:     account.username,
			PasswordHash: hash,
			Role:         account.role,
			Enabled:      true,
		}
		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("auth: seeding %q: %w", account.username, err)
		}

		logger.Info("seed_user_ensured",
			slog.String("username", account.username),
			slog.String("role", string(account.role)),
		)
	}

	return nil
}
