// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// ROLES
// =============================================================================

// Role is the caller's role. Guest is an explicit case rather than a
// nil-session convention so policy switches stay exhaustive.
type Role string

const (
	// RoleGuest is an unauthenticated caller. Guests never appear in a
	// UserSession; RoleOf normalizes a nil session to RoleGuest.
	RoleGuest Role = "guest"

	// RoleStudent is an enrolled student, identified by NIM.
	RoleStudent Role = "student"

	// RoleLecturer is a lecturer, identified by NIP.
	RoleLecturer Role = "lecturer"

	// RoleEmployee is a staff member, identified by NIK.
	RoleEmployee Role = "employee"

	// RoleAdmin has unrestricted access to every table and column.
	RoleAdmin Role = "admin"
)

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleStudent, RoleLecturer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role may use the attendance write path.
func (r Role) Staff() bool {
	return r == RoleLecturer || r == RoleEmployee || r == RoleAdmin
}

// =============================================================================
// USER SESSION
// =============================================================================

// UserSession identifies an authenticated caller. Identifier is the
// natural key of the role's table: NIM for students, NIP for
// lecturers, NIK for employees, username for admins.
type UserSession struct {
	ID         string
	Role       Role
	Name       string
	Identifier string
}

// RoleOf returns the caller's role, normalizing a nil session to
// RoleGuest. All policy code goes through this instead of nil checks.
func RoleOf(caller *UserSession) Role {
	if caller == nil {
		return RoleGuest
	}
	return caller.Role
}
