// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access, required for every mutating catalogue endpoint
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard accounts, read-only catalogue access
	RoleUser UserRole = "USER"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
