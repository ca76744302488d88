package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// DirectorService handles director CRUD operations.
type DirectorService struct {
	directorRepo repository.DirectorRepository
	cache        repository.Cache
	logger       zerolog.Logger
}

// NewDirectorService creates a new DirectorService. cache may be nil to
// disable listing caching.
func NewDirectorService(directorRepo repository.DirectorRepository, cache repository.Cache, logger zerolog.Logger) *DirectorService {
	return &DirectorService{
		directorRepo: directorRepo,
		cache:        cache,
		logger:       logger.With().Str("service", "director").Logger(),
	}
}

// DirectorInput contains the mutable fields of a director.
type DirectorInput struct {
	Name      string
	BirthYear int
}

// List returns all directors ordered by ascending ID.
func (s *DirectorService) List(ctx context.Context) ([]*domain.Director, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, directorsListKey); err == nil {
			var directors []*domain.Director
			if err := json.Unmarshal(data, &directors); err == nil {
				return directors, nil
			}
			s.logger.Debug().Msg("discarding undecodable cached director list")
		}
	}

	directors, err := s.directorRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list directors")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(directors); err == nil {
			if err := s.cache.Set(ctx, directorsListKey, data, listCacheTTL); err != nil {
				s.logger.Debug().Err(err).Msg("failed to cache director list")
			}
		}
	}

	return directors, nil
}

// Get retrieves a director by ID.
func (s *DirectorService) Get(ctx context.Context, id int64) (*domain.Director, error) {
	director, err := s.directorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDirectorNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("director_id", id).Msg("failed to get director")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return director, nil
}

// Create creates a new director with a server-assigned ID.
func (s *DirectorService) Create(ctx context.Context, input DirectorInput) (*domain.Director, error) {
	director := &domain.Director{
		Name:      input.Name,
		BirthYear: input.BirthYear,
	}

	if err := s.directorRepo.Create(ctx, director); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create director")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// Movie listings join the director name, so both lists go stale.
	invalidateLists(ctx, s.cache, s.logger, directorsListKey, moviesListKey)

	s.logger.Info().
		Int64("director_id", director.ID).
		Str("name", director.Name).
		Msg("director created")

	return director, nil
}

// Update fully replaces the mutable fields of an existing director.
func (s *DirectorService) Update(ctx context.Context, id int64, input DirectorInput) (*domain.Director, error) {
	director := &domain.Director{
		ID:        id,
		Name:      input.Name,
		BirthYear: input.BirthYear,
	}

	if err := s.directorRepo.Update(ctx, director); err != nil {
		if errors.Is(err, domain.ErrDirectorNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("director_id", id).Msg("failed to update director")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	invalidateLists(ctx, s.cache, s.logger, directorsListKey, moviesListKey)

	s.logger.Info().Int64("director_id", id).Msg("director updated")

	return director, nil
}

// Delete deletes a director by ID. Movies referencing the director keep
// their director_id; their listings surface a null director name.
func (s *DirectorService) Delete(ctx context.Context, id int64) error {
	if err := s.directorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDirectorNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("director_id", id).Msg("failed to delete director")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	invalidateLists(ctx, s.cache, s.logger, directorsListKey, moviesListKey)

	s.logger.Info().Int64("director_id", id).Msg("director deleted")

	return nil
}
