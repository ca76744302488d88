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

// MovieService handles movie CRUD operations.
type MovieService struct {
	movieRepo repository.MovieRepository
	cache     repository.Cache
	logger    zerolog.Logger
}

// NewMovieService creates a new MovieService. cache may be nil to disable
// listing caching.
func NewMovieService(movieRepo repository.MovieRepository, cache repository.Cache, logger zerolog.Logger) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		cache:     cache,
		logger:    logger.With().Str("service", "movie").Logger(),
	}
}

// MovieInput contains the mutable fields of a movie. DirectorID is not
// checked against the directors table: dangling references are allowed and
// surface as a null director name in listings.
type MovieInput struct {
	Title      string
	Year       int
	DirectorID *int64
}

// List returns all movies ordered by ascending ID, each joined with its
// director's name.
func (s *MovieService) List(ctx context.Context) ([]*domain.MovieWithDirector, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, moviesListKey); err == nil {
			var movies []*domain.MovieWithDirector
			if err := json.Unmarshal(data, &movies); err == nil {
				return movies, nil
			}
			s.logger.Debug().Msg("discarding undecodable cached movie list")
		}
	}

	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list movies")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(movies); err == nil {
			if err := s.cache.Set(ctx, moviesListKey, data, listCacheTTL); err != nil {
				s.logger.Debug().Err(err).Msg("failed to cache movie list")
			}
		}
	}

	return movies, nil
}

// Get retrieves a movie by ID, joined with its director's name.
func (s *MovieService) Get(ctx context.Context, id int64) (*domain.MovieWithDirector, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to get movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return movie, nil
}

// Create creates a new movie with a server-assigned ID.
func (s *MovieService) Create(ctx context.Context, input MovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		Title:      input.Title,
		Year:       input.Year,
		DirectorID: input.DirectorID,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	invalidateLists(ctx, s.cache, s.logger, moviesListKey)

	s.logger.Info().
		Int64("movie_id", movie.ID).
		Str("title", movie.Title).
		Msg("movie created")

	return movie, nil
}

// Update fully replaces the mutable fields of an existing movie.
func (s *MovieService) Update(ctx context.Context, id int64, input MovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		ID:         id,
		Title:      input.Title,
		Year:       input.Year,
		DirectorID: input.DirectorID,
	}

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to update movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	invalidateLists(ctx, s.cache, s.logger, moviesListKey)

	s.logger.Info().Int64("movie_id", id).Msg("movie updated")

	return movie, nil
}

// Delete deletes a movie by ID.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to delete movie")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	invalidateLists(ctx, s.cache, s.logger, moviesListKey)

	s.logger.Info().Int64("movie_id", id).Msg("movie deleted")

	return nil
}
