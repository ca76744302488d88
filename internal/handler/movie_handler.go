package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/metrics"
	"github.com/prn-tf/film-api/internal/service"
)

// MovieHandler handles movie CRUD endpoints.
type MovieHandler struct {
	movieService *service.MovieService
	logger       zerolog.Logger
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movieService *service.MovieService, logger zerolog.Logger) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		logger:       logger.With().Str("handler", "movie").Logger(),
	}
}

// movieRequest uses pointer fields so absent keys are distinguishable from
// zero values. DirectorID stays optional: a movie may have no director, or
// reference one that no longer exists.
type movieRequest struct {
	Title      *string `json:"title"`
	Year       *int    `json:"year"`
	DirectorID *int64  `json:"director_id"`
}

func (req *movieRequest) validate() (service.MovieInput, bool) {
	if req.Title == nil || *req.Title == "" || req.Year == nil {
		return service.MovieInput{}, false
	}
	return service.MovieInput{
		Title:      *req.Title,
		Year:       *req.Year,
		DirectorID: req.DirectorID,
	}, true
}

// List handles GET /movies.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Get handles GET /movies/{id}.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := h.movieService.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// Create handles POST /movies.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	movie, err := h.movieService.Create(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("movie", "create").Inc()
	writeJSON(w, http.StatusCreated, movie)
}

// Update handles PUT /movies/{id}. The body must carry title and year;
// partial updates fail with 400 and leave the record unchanged.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	movie, err := h.movieService.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("movie", "update").Inc()
	writeJSON(w, http.StatusOK, movie)
}

// Delete handles DELETE /movies/{id}.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.movieService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("movie", "delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *MovieHandler) decode(w http.ResponseWriter, r *http.Request) (service.MovieInput, bool) {
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return service.MovieInput{}, false
	}
	input, ok := req.validate()
	if !ok {
		writeError(w, http.StatusBadRequest, "title and year are required")
		return service.MovieInput{}, false
	}
	return input, true
}
