// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is the privilege tier stored on an account.
type UserRole string

const (
	// Default role for every self-registered account
	RoleUser UserRole = "user"

	// Can edit or delete any review or comment and read the staff user directory
	RoleModerator UserRole = "moderator"

	// Full catalog and user management
	RoleAdmin UserRole = "admin"
)

// Roles lists every valid role, lowest privilege first.
var Roles = []UserRole{RoleUser, RoleModerator, RoleAdmin}

// IsValid reports whether r is one of the three known roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Derived Predicates

// IsAdmin holds for the admin role or for a superuser of any role.
func IsAdmin(role UserRole, superuser bool) bool {
	return role.AtLeast(RoleAdmin) || superuser
}

// IsModeratorOrAdmin holds for moderators and for anyone [IsAdmin] accepts.
func IsModeratorOrAdmin(role UserRole, superuser bool) bool {
	return role.AtLeast(RoleModerator) || superuser
}
