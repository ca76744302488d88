// Package service provides business logic services for the film API.
package service

import "errors"

// Common service errors. Not-found, conflict and credential errors pass
// through from the domain package; these cover validation and internal
// failures.
var (
	// ErrInvalidUsername indicates the username is missing or too long.
	ErrInvalidUsername = errors.New("invalid username: must be 1-255 characters")

	// ErrInvalidPassword indicates the password fails the length policy.
	ErrInvalidPassword = errors.New("invalid password: must be at least 6 characters")

	// ErrInvalidRole indicates an unknown role label.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInternalError indicates a store, hash, or signing failure. The
	// original detail is logged server-side and never echoed to clients.
	ErrInternalError = errors.New("internal server error")
)
