package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/metrics"
	"github.com/prn-tf/film-api/internal/service"
)

// DirectorHandler handles director CRUD endpoints.
type DirectorHandler struct {
	directorService *service.DirectorService
	logger          zerolog.Logger
}

// NewDirectorHandler creates a new DirectorHandler.
func NewDirectorHandler(directorService *service.DirectorService, logger zerolog.Logger) *DirectorHandler {
	return &DirectorHandler{
		directorService: directorService,
		logger:          logger.With().Str("handler", "director").Logger(),
	}
}

// directorRequest uses pointer fields so that absent keys are
// distinguishable from zero values: birthYear 0 is a valid year, a missing
// field is not.
type directorRequest struct {
	Name      *string `json:"name"`
	BirthYear *int    `json:"birthYear"`
}

func (req *directorRequest) validate() (service.DirectorInput, bool) {
	if req.Name == nil || *req.Name == "" || req.BirthYear == nil {
		return service.DirectorInput{}, false
	}
	return service.DirectorInput{
		Name:      *req.Name,
		BirthYear: *req.BirthYear,
	}, true
}

// List handles GET /directors.
func (h *DirectorHandler) List(w http.ResponseWriter, r *http.Request) {
	directors, err := h.directorService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, directors)
}

// Get handles GET /directors/{id}.
func (h *DirectorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	director, err := h.directorService.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, director)
}

// Create handles POST /directors.
func (h *DirectorHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	director, err := h.directorService.Create(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("director", "create").Inc()
	writeJSON(w, http.StatusCreated, director)
}

// Update handles PUT /directors/{id}. The body must carry every mutable
// field; partial updates fail with 400 and leave the record unchanged.
func (h *DirectorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	director, err := h.directorService.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("director", "update").Inc()
	writeJSON(w, http.StatusOK, director)
}

// Delete handles DELETE /directors/{id}.
func (h *DirectorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.directorService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.EntityWritesTotal.WithLabelValues("director", "delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DirectorHandler) decode(w http.ResponseWriter, r *http.Request) (service.DirectorInput, bool) {
	var req directorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return service.DirectorInput{}, false
	}
	input, ok := req.validate()
	if !ok {
		writeError(w, http.StatusBadRequest, "name and birthYear are required")
		return service.DirectorInput{}, false
	}
	return input, true
}

// pathID parses the {id} URL parameter, replying 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
