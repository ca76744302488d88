package postgres

import "github.com/prn-tf/film-api/internal/repository"

// NewRepositories creates the full PostgreSQL repository set.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Director: NewDirectorRepository(db),
		Movie:    NewMovieRepository(db),
	}
}
