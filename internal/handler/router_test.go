package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/film-api/internal/auth"
	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/service"
)

// =============================================================================
// In-memory repositories
// =============================================================================

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.Username] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, exists := s.users[username]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubDirectorRepo struct {
	directors map[int64]*domain.Director
	nextID    int64
}

func (s *stubDirectorRepo) Create(ctx context.Context, d *domain.Director) error {
	d.ID = s.nextID
	s.nextID++
	s.directors[d.ID] = d
	return nil
}

func (s *stubDirectorRepo) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	if d, exists := s.directors[id]; exists {
		return d, nil
	}
	return nil, domain.ErrDirectorNotFound
}

func (s *stubDirectorRepo) List(ctx context.Context) ([]*domain.Director, error) {
	result := make([]*domain.Director, 0, len(s.directors))
	for id := int64(1); id < s.nextID; id++ {
		if d, exists := s.directors[id]; exists {
			result = append(result, d)
		}
	}
	return result, nil
}

func (s *stubDirectorRepo) Update(ctx context.Context, d *domain.Director) error {
	if _, exists := s.directors[d.ID]; !exists {
		return domain.ErrDirectorNotFound
	}
	s.directors[d.ID] = d
	return nil
}

func (s *stubDirectorRepo) Delete(ctx context.Context, id int64) error {
	if _, exists := s.directors[id]; !exists {
		return domain.ErrDirectorNotFound
	}
	delete(s.directors, id)
	return nil
}

type stubMovieRepo struct {
	movies    map[int64]*domain.Movie
	directors *stubDirectorRepo
	nextID    int64
}

func (s *stubMovieRepo) join(m *domain.Movie) *domain.MovieWithDirector {
	out := &domain.MovieWithDirector{Movie: *m}
	if m.DirectorID != nil {
		if d, exists := s.directors.directors[*m.DirectorID]; exists {
			name := d.Name
			out.DirectorName = &name
		}
	}
	return out
}

func (s *stubMovieRepo) Create(ctx context.Context, m *domain.Movie) error {
	m.ID = s.nextID
	s.nextID++
	s.movies[m.ID] = m
	return nil
}

func (s *stubMovieRepo) GetByID(ctx context.Context, id int64) (*domain.MovieWithDirector, error) {
	if m, exists := s.movies[id]; exists {
		return s.join(m), nil
	}
	return nil, domain.ErrMovieNotFound
}

func (s *stubMovieRepo) List(ctx context.Context) ([]*domain.MovieWithDirector, error) {
	result := make([]*domain.MovieWithDirector, 0, len(s.movies))
	for id := int64(1); id < s.nextID; id++ {
		if m, exists := s.movies[id]; exists {
			result = append(result, s.join(m))
		}
	}
	return result, nil
}

func (s *stubMovieRepo) Update(ctx context.Context, m *domain.Movie) error {
	if _, exists := s.movies[m.ID]; !exists {
		return domain.ErrMovieNotFound
	}
	s.movies[m.ID] = m
	return nil
}

func (s *stubMovieRepo) Delete(ctx context.Context, id int64) error {
	if _, exists := s.movies[id]; !exists {
		return domain.ErrMovieNotFound
	}
	delete(s.movies, id)
	return nil
}

type stubHealth struct{ err error }

func (s *stubHealth) Ping(ctx context.Context) error { return s.err }
func (s *stubHealth) Close() error                   { return nil }

// =============================================================================
// Test server
// =============================================================================

type testServer struct {
	router http.Handler
	tokens *auth.TokenManager
	health *stubHealth
}

func newTestServer(t *testing.T, bootstrapToken string) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	health := &stubHealth{}

	userRepo := &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
	directorRepo := &stubDirectorRepo{directors: make(map[int64]*domain.Director), nextID: 1}
	movieRepo := &stubMovieRepo{movies: make(map[int64]*domain.Movie), directors: directorRepo, nextID: 1}

	authService := service.NewAuthService(userRepo, tokens, bcrypt.MinCost, logger)
	directorService := service.NewDirectorService(directorRepo, nil, logger)
	movieService := service.NewMovieService(movieRepo, nil, logger)

	router := NewRouter(RouterConfig{
		Auth:      NewAuthHandler(authService, bootstrapToken, logger),
		Directors: NewDirectorHandler(directorService, logger),
		Movies:    NewMovieHandler(movieService, logger),
		Tokens:    tokens,
		Health:    health,
		Logger:    logger,
	})

	return &testServer{router: router, tokens: tokens, health: health}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) token(t *testing.T, role string) map[string]string {
	t.Helper()
	token, err := ts.tokens.Issue(1, "tester", role)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// =============================================================================
// Auth endpoints
// =============================================================================

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "Alice", "password": "secret1"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, rec, &registered)
	require.NotZero(t, registered.ID)
	require.Equal(t, "alice", registered.Username)

	// Duplicate registration, case-insensitively.
	rec = ts.do(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "ALICE", "password": "other-pass"}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "alice", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decodeBody(t, rec, &login)
	require.NotEmpty(t, login.Token)

	claims, err := ts.tokens.Verify(login.Token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "alice", "password": "short"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "", "password": "secret1"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodPost, "/auth/register",
		map[string]string{"username": "alice", "password": "secret1"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := ts.do(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "alice", "password": "wrong"}, nil)
	unknownUser := ts.do(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "nobody", "password": "secret1"}, nil)

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestRegisterAdmin(t *testing.T) {
	ts := newTestServer(t, "bootstrap-123")

	// Without the bootstrap token the endpoint refuses.
	rec := ts.do(t, http.MethodPost, "/auth/register-admin",
		map[string]string{"username": "root", "password": "secret1"}, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/register-admin",
		map[string]string{"username": "root", "password": "secret1"},
		map[string]string{"X-Bootstrap-Token": "wrong"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/register-admin",
		map[string]string{"username": "root", "password": "secret1"},
		map[string]string{"X-Bootstrap-Token": "bootstrap-123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/auth/login",
		map[string]string{"username": "root", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &login)
	claims, err := ts.tokens.Verify(login.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRegisterAdmin_DisabledWithoutConfig(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodPost, "/auth/register-admin",
		map[string]string{"username": "root", "password": "secret1"},
		map[string]string{"X-Bootstrap-Token": ""})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

// =============================================================================
// Role gating
// =============================================================================

func TestDirectorRoutes_RoleGating(t *testing.T) {
	ts := newTestServer(t, "")
	body := map[string]interface{}{"name": "Kurosawa", "birthYear": 1910}

	// Reads are public.
	rec := ts.do(t, http.MethodGet, "/directors", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Creation needs a token.
	rec = ts.do(t, http.MethodPost, "/directors", body, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/directors", body,
		map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/directors", body, ts.token(t, domain.RoleUser))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Mutations need the admin role.
	update := map[string]interface{}{"name": "Akira Kurosawa", "birthYear": 1910}
	rec = ts.do(t, http.MethodPut, "/directors/1", update, ts.token(t, domain.RoleUser))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/directors/1", nil, ts.token(t, domain.RoleUser))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPut, "/directors/1", update, ts.token(t, domain.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/directors/1", nil, ts.token(t, domain.RoleAdmin))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

// =============================================================================
// Directors
// =============================================================================

func TestDirectorLifecycle(t *testing.T) {
	ts := newTestServer(t, "")
	admin := ts.token(t, domain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/directors",
		map[string]interface{}{"name": "Varda", "birthYear": 1928}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Director
	decodeBody(t, rec, &created)
	require.Equal(t, int64(1), created.ID)

	rec = ts.do(t, http.MethodGet, "/directors/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/directors/1",
		map[string]interface{}{"name": "Agnes Varda", "birthYear": 1928}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Director
	decodeBody(t, rec, &updated)
	require.Equal(t, "Agnes Varda", updated.Name)

	rec = ts.do(t, http.MethodDelete, "/directors/1", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/directors/1", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Director not found"}`, rec.Body.String())
}

func TestDirectorValidation(t *testing.T) {
	ts := newTestServer(t, "")
	admin := ts.token(t, domain.RoleAdmin)

	// birthYear 0 is a valid value, not an absent field.
	rec := ts.do(t, http.MethodPost, "/directors",
		map[string]interface{}{"name": "Ancient", "birthYear": 0}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/directors",
		map[string]interface{}{"name": "NoYear"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/directors",
		map[string]interface{}{"birthYear": 1950}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Partial update is rejected and leaves the record unchanged.
	rec = ts.do(t, http.MethodPut, "/directors/1",
		map[string]interface{}{"name": "Renamed"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/directors/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var director domain.Director
	decodeBody(t, rec, &director)
	require.Equal(t, "Ancient", director.Name)
	require.Equal(t, 0, director.BirthYear)
}

// =============================================================================
// Movies
// =============================================================================

func TestMovieLifecycle(t *testing.T) {
	ts := newTestServer(t, "")
	admin := ts.token(t, domain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/directors",
		map[string]interface{}{"name": "Kurosawa", "birthYear": 1910}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/movies",
		map[string]interface{}{"title": "Ran", "year": 1985, "director_id": 1}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/movies/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movie struct {
		Title        string  `json:"title"`
		Year         int     `json:"year"`
		DirectorID   *int64  `json:"director_id"`
		DirectorName *string `json:"director_name"`
	}
	decodeBody(t, rec, &movie)
	require.Equal(t, "Ran", movie.Title)
	require.NotNil(t, movie.DirectorName)
	require.Equal(t, "Kurosawa", *movie.DirectorName)

	rec = ts.do(t, http.MethodPut, "/movies/1",
		map[string]interface{}{"title": "Ran (restored)", "year": 1985, "director_id": 1}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/movies/1", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/movies/1", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Movie not found"}`, rec.Body.String())
}

func TestMovie_DanglingDirectorListsNullName(t *testing.T) {
	ts := newTestServer(t, "")
	admin := ts.token(t, domain.RoleAdmin)

	// A movie may reference a director id that was never created.
	rec := ts.do(t, http.MethodPost, "/movies",
		map[string]interface{}{"title": "Orphan", "year": 2000, "director_id": 42}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/movies", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movies []struct {
		Title        string  `json:"title"`
		DirectorID   *int64  `json:"director_id"`
		DirectorName *string `json:"director_name"`
	}
	decodeBody(t, rec, &movies)
	require.Len(t, movies, 1)
	require.NotNil(t, movies[0].DirectorID)
	require.Nil(t, movies[0].DirectorName)
}

func TestMovieValidation(t *testing.T) {
	ts := newTestServer(t, "")
	admin := ts.token(t, domain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/movies",
		map[string]interface{}{"title": "NoYear"}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/movies",
		map[string]interface{}{"year": 2020}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// director_id stays optional.
	rec = ts.do(t, http.MethodPost, "/movies",
		map[string]interface{}{"title": "Anonymous", "year": 2011}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
}

// =============================================================================
// Misc routes
// =============================================================================

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodGet, "/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}

func TestInvalidIDParam(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodGet, "/directors/abc", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t, "")

	rec := ts.do(t, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		OK       bool   `json:"ok"`
		Service  string `json:"service"`
		Database string `json:"database"`
	}
	decodeBody(t, rec, &status)
	require.True(t, status.OK)
	require.Equal(t, "film-api", status.Service)
	require.Equal(t, "ok", status.Database)

	// The probe stays 200 through a backend outage; only the database
	// field changes.
	ts.health.err = context.DeadlineExceeded
	rec = ts.do(t, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &status)
	require.True(t, status.OK)
	require.Equal(t, "unreachable", status.Database)
}
