// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paulohdf/animedex/internal/platform/constants"
	"github.com/paulohdf/animedex/internal/platform/dberr"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// RedisCredentialCache implements CredentialCache using Redis.
//
// Basic auth resolves credentials on every request; caching the record for
// a short TTL keeps those lookups off the primary database. Password hashes
// are cached alongside the record — the cache is trusted infrastructure,
// same as the database it shadows.
type RedisCredentialCache struct {
	client *redis.Client
}

// NewCredentialCache creates a new Redis-backed CredentialCache.
func NewCredentialCache(client *redis.Client) *RedisCredentialCache {
	return &RedisCredentialCache{client: client}
}

// cachedUser mirrors User with the password hash included, since the JSON
// tags on User deliberately drop it.
type cachedUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

func (cache *RedisCredentialCache) Get(ctx context.Context, username string) (*User, error) {
	key := constants.RedisPrefixCredential + username

	payload, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("redis_credential_get_failed: %w", err)
	}

	var cached cachedUser
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("redis_credential_decode_failed: %w", err)
	}

	return &User{
		ID:           cached.ID,
		Username:     cached.Username,
		PasswordHash: cached.PasswordHash,
		Role:         sec.UserRole(cached.Role),
		Enabled:      cached.Enabled,
		CreatedAt:    cached.CreatedAt,
	}, nil
}

func (cache *RedisCredentialCache) Set(ctx context.Context, user *User, ttl time.Duration) error {
	key := constants.RedisPrefixCredential + user.Username

	payload, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Enabled:      user.Enabled,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redis_credential_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_credential_set_failed: %w", err)
	}

	return nil
}

var _ CredentialCache = (*RedisCredentialCache)(nil)
