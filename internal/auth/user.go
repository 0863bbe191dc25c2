// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

/*
Package auth implements the credential verification layer.

It defines the credential record (User) and the logic that turns a
username/password pair — or an issued access token — into authenticated
claims for the authorization gate.

# Architecture

Credential records are provisioned at startup (seed data) and read-only from
the request pipeline's perspective: the only runtime operation is a username
lookup followed by a constant-time password comparison.
*/
package auth

import (
	"time"

	"github.com/paulohdf/animedex/internal/platform/sec"
)

// # Domain Entities

// User represents a credential record consulted for authorization decisions.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Enabled      bool         `json:"enabled"`
	CreatedAt    time.Time    `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
)
