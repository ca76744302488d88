package postgres

import (
	"context"
	"fmt"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// movieRepository implements repository.MovieRepository for PostgreSQL.
type movieRepository struct {
	db *DB
}

// NewMovieRepository creates a new PostgreSQL movie repository.
func NewMovieRepository(db *DB) repository.MovieRepository {
	return &movieRepository{db: db}
}

// Create creates a new movie and assigns its ID.
func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, year, director_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query, movie.Title, movie.Year, movie.DirectorID).Scan(&movie.ID)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

// GetByID retrieves a movie by ID, joined with its director's name.
// A dangling or null director_id yields a nil DirectorName.
func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.MovieWithDirector, error) {
	query := `
		SELECT m.id, m.title, m.year, m.director_id, d.name
		FROM movies m
		LEFT JOIN directors d ON d.id = m.director_id
		WHERE m.id = $1
	`

	movie := &domain.MovieWithDirector{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.DirectorID,
		&movie.DirectorName,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}

	return movie, nil
}

// List returns all movies ordered by ascending ID, joined with director names.
func (r *movieRepository) List(ctx context.Context) ([]*domain.MovieWithDirector, error) {
	query := `
		SELECT m.id, m.title, m.year, m.director_id, d.name
		FROM movies m
		LEFT JOIN directors d ON d.id = m.director_id
		ORDER BY m.id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []*domain.MovieWithDirector{}
	for rows.Next() {
		movie := &domain.MovieWithDirector{}
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&movie.DirectorID,
			&movie.DirectorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

// Update fully replaces the mutable fields of an existing movie.
func (r *movieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, year = $2, director_id = $3
		WHERE id = $4
	`

	tag, err := r.db.Pool.Exec(ctx, query, movie.Title, movie.Year, movie.DirectorID, movie.ID)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

// Delete deletes a movie by ID.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

// Ensure movieRepository implements repository.MovieRepository.
var _ repository.MovieRepository = (*movieRepository)(nil)
