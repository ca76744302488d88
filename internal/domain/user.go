// Package domain contains the core business entities for the film API.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the service.
package domain

import (
	"strings"
	"time"
)

// Role is the coarse privilege label attached to a user.
// It gates mutation and deletion routes.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the known role labels.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User represents a registered account in the system.
// Users are immutable after creation: there are no update or delete routes.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique login name. It is lower-cased before storage
	// and lookup, making uniqueness checks and logins case-insensitive.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never be exposed in API responses.
	PasswordHash string `json:"-"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with the given credentials.
// The username is normalized to lower case; the role defaults to RoleUser
// when empty.
func NewUser(username, passwordHash, role string) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		Username:     strings.ToLower(username),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsAdmin returns true if the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
