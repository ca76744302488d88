// Package repository defines data access interfaces for the film API.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/prn-tf/film-api/internal/domain"
)

// UserRepository defines the interface for user data access.
// The storage layer enforces username uniqueness; a violation surfaces as
// domain.ErrUserAlreadyExists so concurrent registrations resolve to exactly
// one winner.
type UserRepository interface {
	// Create creates a new user. The username must already be lower-cased.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by lower-cased username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// DirectorRepository defines the interface for director data access.
type DirectorRepository interface {
	// Create creates a new director and assigns its ID.
	Create(ctx context.Context, director *domain.Director) error

	// GetByID retrieves a director by ID.
	GetByID(ctx context.Context, id int64) (*domain.Director, error)

	// List returns all directors ordered by ascending ID.
	List(ctx context.Context) ([]*domain.Director, error)

	// Update fully replaces the mutable fields of an existing director.
	Update(ctx context.Context, director *domain.Director) error

	// Delete deletes a director by ID. Movies referencing the director are
	// left untouched; their listings surface a null director name.
	Delete(ctx context.Context, id int64) error
}

// MovieRepository defines the interface for movie data access.
// Reads join the directors table to surface a denormalized director name.
type MovieRepository interface {
	// Create creates a new movie and assigns its ID.
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a movie by ID, joined with its director's name.
	GetByID(ctx context.Context, id int64) (*domain.MovieWithDirector, error)

	// List returns all movies ordered by ascending ID, each joined with its
	// director's name (nil for absent or dangling references).
	List(ctx context.Context) ([]*domain.MovieWithDirector, error)

	// Update fully replaces the mutable fields of an existing movie.
	Update(ctx context.Context, movie *domain.Movie) error

	// Delete deletes a movie by ID.
	Delete(ctx context.Context, id int64) error
}

// DatabaseHealth is an interface for database lifecycle and health checks.
// Both backend DB wrappers satisfy it for the status endpoint and shutdown.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}

// Repositories holds all repository instances for one backend.
type Repositories struct {
	User     UserRepository
	Director DirectorRepository
	Movie    MovieRepository
}
