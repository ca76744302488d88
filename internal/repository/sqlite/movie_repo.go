package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// movieRepository implements repository.MovieRepository for SQLite.
type movieRepository struct {
	db *DB
}

// NewMovieRepository creates a new SQLite movie repository.
func NewMovieRepository(db *DB) repository.MovieRepository {
	return &movieRepository{db: db}
}

// Create creates a new movie and assigns its ID.
func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, year, director_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, movie.Title, movie.Year, toNullInt64(movie.DirectorID))
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	movie.ID = id

	return nil
}

// GetByID retrieves a movie by ID, joined with its director's name.
// A dangling or null director_id yields a nil DirectorName.
func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.MovieWithDirector, error) {
	query := `
		SELECT m.id, m.title, m.year, m.director_id, d.name
		FROM movies m
		LEFT JOIN directors d ON d.id = m.director_id
		WHERE m.id = ?
	`

	movie := &domain.MovieWithDirector{}
	var directorID sql.NullInt64
	var directorName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&directorID,
		&directorName,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}

	movie.DirectorID = fromNullInt64(directorID)
	movie.DirectorName = fromNullString(directorName)

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

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []*domain.MovieWithDirector{}
	for rows.Next() {
		movie := &domain.MovieWithDirector{}
		var directorID sql.NullInt64
		var directorName sql.NullString

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Year,
			&directorID,
			&directorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}

		movie.DirectorID = fromNullInt64(directorID)
		movie.DirectorName = fromNullString(directorName)

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
		SET title = ?, year = ?, director_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, movie.Title, movie.Year, toNullInt64(movie.DirectorID), movie.ID)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

// Delete deletes a movie by ID.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

// toNullInt64 converts an optional int64 to its nullable column value.
func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// fromNullInt64 converts a nullable column value to an optional int64.
func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// fromNullString converts a nullable column value to an optional string.
func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// Ensure movieRepository implements repository.MovieRepository.
var _ repository.MovieRepository = (*movieRepository)(nil)
