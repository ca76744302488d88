package sqlite

import (
	"context"
	"fmt"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// directorRepository implements repository.DirectorRepository for SQLite.
type directorRepository struct {
	db *DB
}

// NewDirectorRepository creates a new SQLite director repository.
func NewDirectorRepository(db *DB) repository.DirectorRepository {
	return &directorRepository{db: db}
}

// Create creates a new director and assigns its ID.
func (r *directorRepository) Create(ctx context.Context, director *domain.Director) error {
	query := `
		INSERT INTO directors (name, birth_year)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, director.Name, director.BirthYear)
	if err != nil {
		return fmt.Errorf("failed to create director: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	director.ID = id

	return nil
}

// GetByID retrieves a director by ID.
func (r *directorRepository) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	query := `
		SELECT id, name, birth_year
		FROM directors
		WHERE id = ?
	`

	director := &domain.Director{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&director.ID,
		&director.Name,
		&director.BirthYear,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrDirectorNotFound
		}
		return nil, fmt.Errorf("failed to get director by ID: %w", err)
	}

	return director, nil
}

// List returns all directors ordered by ascending ID.
func (r *directorRepository) List(ctx context.Context) ([]*domain.Director, error) {
	query := `
		SELECT id, name, birth_year
		FROM directors
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	defer rows.Close()

	directors := []*domain.Director{}
	for rows.Next() {
		director := &domain.Director{}
		if err := rows.Scan(&director.ID, &director.Name, &director.BirthYear); err != nil {
			return nil, fmt.Errorf("failed to scan director: %w", err)
		}
		directors = append(directors, director)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating directors: %w", err)
	}

	return directors, nil
}

// Update fully replaces the mutable fields of an existing director.
func (r *directorRepository) Update(ctx context.Context, director *domain.Director) error {
	query := `
		UPDATE directors
		SET name = ?, birth_year = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, director.Name, director.BirthYear, director.ID)
	if err != nil {
		return fmt.Errorf("failed to update director: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDirectorNotFound
	}

	return nil
}

// Delete deletes a director by ID.
func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM directors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete director: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrDirectorNotFound
	}

	return nil
}

// Ensure directorRepository implements repository.DirectorRepository.
var _ repository.DirectorRepository = (*directorRepository)(nil)
