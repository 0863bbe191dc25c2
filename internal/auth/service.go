// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/constants"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements credential verification use cases.
//
// It satisfies the middleware's CredentialVerifier interface for basic-auth
// requests and backs the /auth/login token issuance endpoint.
type Service struct {
	userRepository UserRepository
	cache          CredentialCache // nil disables caching
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a Service with its dependencies. cache may be nil.
func NewService(userRepo UserRepository, cache CredentialCache, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		cache:          cache,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// Authenticate verifies a username/password pair and returns the caller's claims.
//
// # Flow
//  1. Resolve the credential record (short-TTL cache first, then the store).
//  2. Reject disabled accounts.
//  3. Constant-time bcrypt comparison of the supplied password.
//
// Failures are a generic Unauthorized to prevent username enumeration.
func (service *Service) Authenticate(ctx context.Context, username, password string) (*sec.AuthClaims, error) {
	user, err := service.lookup(ctx, username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !user.Enabled {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return &sec.AuthClaims{
		UserID:   strconv.FormatInt(user.ID, 10),
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}

// # Token Issuance

// LoginInput defines credentials for a token request.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession is the transport-ready result of a successful login.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

// Login verifies credentials and issues a short-lived access token, so
// clients can avoid resending basic credentials on every request.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.lookup(ctx, input.Username)
	if err != nil || !user.Enabled || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		strconv.FormatInt(user.ID, 10), user.Username, string(user.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.Info("access_token_issued", slog.String("username", user.Username))

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(constants.AccessTokenTTL),
		User:        user,
	}, nil
}

// lookup resolves a credential record, consulting the cache when present.
func (service *Service) lookup(ctx context.Context, username string) (*User, error) {
	if service.cache != nil {
		if user, err := service.cache.Get(ctx, username); err == nil {
			return user, nil
		}
	}

	user, err := service.userRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(ctx, user, constants.CredentialCacheTTL); err != nil {
			// Cache write failures degrade to uncached lookups, never to request failures.
			service.logger.Warn("credential_cache_set_failed", slog.Any("error", err))
		}
	}

	return user, nil
}
