package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/film-api/internal/auth"
	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// RouterConfig collects the dependencies of the HTTP router.
type RouterConfig struct {
	Auth      *AuthHandler
	Directors *DirectorHandler
	Movies    *MovieHandler
	Tokens    *auth.TokenManager
	Health    repository.DatabaseHealth
	Logger    zerolog.Logger
}

// NewRouter builds the HTTP route tree.
//
// Reads on /directors and /movies are public. Creates require a valid
// token; updates and deletes additionally require the admin role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer(cfg.Logger))
	r.Use(RequestLogger(cfg.Logger))

	authenticate := auth.Authenticate(cfg.Tokens, cfg.Logger)
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	r.Get("/status", statusHandler(cfg.Health))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.Auth.Register)
		r.Post("/register-admin", cfg.Auth.RegisterAdmin)
		r.Post("/login", cfg.Auth.Login)
	})

	r.Route("/directors", func(r chi.Router) {
		r.Get("/", cfg.Directors.List)
		r.Get("/{id}", cfg.Directors.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", cfg.Directors.Create)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/{id}", cfg.Directors.Update)
				r.Delete("/{id}", cfg.Directors.Delete)
			})
		})
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", cfg.Movies.List)
		r.Get("/{id}", cfg.Movies.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", cfg.Movies.Create)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/{id}", cfg.Movies.Update)
				r.Delete("/{id}", cfg.Movies.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// statusResponse is the health probe payload.
type statusResponse struct {
	OK        bool   `json:"ok"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// statusHandler reports liveness. The probe itself always answers 200; the
// database field is informational so orchestration can alert on a backend
// outage without recycling the process.
func statusHandler(health repository.DatabaseHealth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := health.Ping(ctx); err != nil {
			dbStatus = "unreachable"
		}

		writeJSON(w, http.StatusOK, statusResponse{
			OK:        true,
			Service:   "film-api",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  dbStatus,
		})
	}
}
