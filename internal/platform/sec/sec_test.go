// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulohdf/animedex/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy comparison.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"user_below_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"unknown_below_user", sec.UserRole("GUEST"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestPasswordHashing verifies the bcrypt hash round trip.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("devEnvironment")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// 1. Hash is not the plain text
	assert.NotEqual(t, "devEnvironment", hash)

	// 2. Correct password verifies
	assert.True(t, sec.CheckPasswordHash("devEnvironment", hash))

	// 3. Wrong password fails
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestTokenService_RoundTrip verifies HS256 signing and claim recovery.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("unit-test-secret", "animedex.dev")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("42", "admin", string(sec.RoleAdmin), 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
	assert.Equal(t, "animedex.dev", claims.Issuer)
}

/*
TestTokenService_Rejections covers tampered, expired, and cross-key tokens.
*/
func TestTokenService_Rejections(t *testing.T) {
	service, err := sec.NewTokenService("unit-test-secret", "animedex.dev")
	require.NoError(t, err)

	// 1. Expired token
	expired, err := service.GenerateAccessToken("42", "admin", string(sec.RoleAdmin), -1*time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	// 2. Token signed with a different secret
	other, err := sec.NewTokenService("a-different-secret", "animedex.dev")
	require.NoError(t, err)
	foreign, err := other.GenerateAccessToken("42", "admin", string(sec.RoleAdmin), 15*time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	// 3. Garbage input
	_, err = service.VerifyToken("not.a.token")
	assert.Error(t, err)

	// 4. Empty secret is a constructor error
	_, err = sec.NewTokenService("", "animedex.dev")
	assert.Error(t, err)
}
