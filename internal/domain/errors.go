// Package domain contains the core business entities for the film API.
package domain

import "errors"

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed. It is returned
	// for both unknown usernames and wrong passwords so the response never
	// reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDirectorNotFound indicates the requested director does not exist.
	ErrDirectorNotFound = errors.New("director not found")

	// ErrMovieNotFound indicates the requested movie does not exist.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrAccessDenied indicates the caller does not have permission.
	ErrAccessDenied = errors.New("access denied")
)
