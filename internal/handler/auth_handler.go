package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/metrics"
	"github.com/prn-tf/film-api/internal/service"
)

// bootstrapTokenHeader gates admin registration.
const bootstrapTokenHeader = "X-Bootstrap-Token"

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	bootstrapToken string
	logger         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler. bootstrapToken authorizes the
// admin registration endpoint; when empty, admin registration is disabled.
func NewAuthHandler(authService *service.AuthService, bootstrapToken string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		bootstrapToken: bootstrapToken,
		logger:         logger.With().Str("handler", "auth").Logger(),
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register handles POST /auth/register. New accounts always get the user
// role; the role field of the request body, if present, is ignored.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleUser)
}

// RegisterAdmin handles POST /auth/register-admin. The caller must present
// the bootstrap token; without it (or when the server has none configured)
// the request fails with 403 so the endpoint is indistinguishable from a
// disabled one.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	presented := r.Header.Get(bootstrapTokenHeader)
	if h.bootstrapToken == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(h.bootstrapToken)) != 1 {
		h.logger.Warn().Str("remote", r.RemoteAddr).Msg("admin registration rejected")
		writeError(w, http.StatusForbidden, "access denied")
		return
	}
	h.register(w, r, domain.RoleAdmin)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role string) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, _, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		respondError(w, h.logger, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
	})
}
