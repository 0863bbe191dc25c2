// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository is the persistence contract for credential records.
//
// Implementations must return [dberr.ErrNotFound] (or an error wrapping it)
// from FindByUsername when no record matches.
type UserRepository interface {
	// FindByUsername returns the credential record with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new credential record (startup seeding only).
	Create(ctx context.Context, user *User) error
}

// CredentialCache is a short-TTL cache of username → credential record,
// sitting in front of the repository for per-request basic-auth lookups.
//
// A nil CredentialCache disables caching entirely.
type CredentialCache interface {
	// Get returns the cached record for username, or a not-found error.
	Get(ctx context.Context, username string) (*User, error)

	// Set stores the record under its username with the given TTL.
	Set(ctx context.Context, user *User, ttl time.Duration) error
}
