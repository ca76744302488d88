// Package handler provides HTTP handlers for the film API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/service"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError is the single centralized error responder: it maps service
// and domain errors to HTTP statuses. Unrecognized failures become a generic
// 500 with the original detail logged server-side, never echoed to the
// client.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")

	case errors.Is(err, domain.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access denied")

	case errors.Is(err, domain.ErrDirectorNotFound):
		writeError(w, http.StatusNotFound, "Director not found")

	case errors.Is(err, domain.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, "Movie not found")

	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")

	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "username already taken")

	default:
		logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
