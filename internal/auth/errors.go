package auth

import "errors"

var (
	// ErrMissingToken indicates no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken indicates the token failed verification: bad
	// signature, malformed structure, or elapsed expiry.
	ErrInvalidToken = errors.New("invalid token")
)
