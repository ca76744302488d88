package service

import (
	"context"
	"sync"
	"time"

	"github.com/prn-tf/film-api/internal/domain"
	"github.com/prn-tf/film-api/internal/repository"
)

// mockUserRepository is an in-memory repository.UserRepository.
type mockUserRepository struct {
	users     map[string]*domain.User
	nextID    int64
	createErr error
	getErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[username]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// mockDirectorRepository is an in-memory repository.DirectorRepository.
type mockDirectorRepository struct {
	directors map[int64]*domain.Director
	nextID    int64
	listErr   error
	listCalls int
}

func newMockDirectorRepository() *mockDirectorRepository {
	return &mockDirectorRepository{
		directors: make(map[int64]*domain.Director),
		nextID:    1,
	}
}

func (m *mockDirectorRepository) Create(ctx context.Context, director *domain.Director) error {
	director.ID = m.nextID
	m.nextID++
	m.directors[director.ID] = director
	return nil
}

func (m *mockDirectorRepository) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	if d, exists := m.directors[id]; exists {
		return d, nil
	}
	return nil, domain.ErrDirectorNotFound
}

func (m *mockDirectorRepository) List(ctx context.Context) ([]*domain.Director, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*domain.Director, 0, len(m.directors))
	for id := int64(1); id < m.nextID; id++ {
		if d, exists := m.directors[id]; exists {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDirectorRepository) Update(ctx context.Context, director *domain.Director) error {
	if _, exists := m.directors[director.ID]; !exists {
		return domain.ErrDirectorNotFound
	}
	m.directors[director.ID] = director
	return nil
}

func (m *mockDirectorRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.directors[id]; !exists {
		return domain.ErrDirectorNotFound
	}
	delete(m.directors, id)
	return nil
}

// mockMovieRepository is an in-memory repository.MovieRepository backed by a
// director repository so listings can resolve director names.
type mockMovieRepository struct {
	movies    map[int64]*domain.Movie
	directors *mockDirectorRepository
	nextID    int64
	listCalls int
}

func newMockMovieRepository(directors *mockDirectorRepository) *mockMovieRepository {
	return &mockMovieRepository{
		movies:    make(map[int64]*domain.Movie),
		directors: directors,
		nextID:    1,
	}
}

func (m *mockMovieRepository) withDirector(movie *domain.Movie) *domain.MovieWithDirector {
	out := &domain.MovieWithDirector{Movie: *movie}
	if movie.DirectorID != nil && m.directors != nil {
		if d, exists := m.directors.directors[*movie.DirectorID]; exists {
			name := d.Name
			out.DirectorName = &name
		}
	}
	return out
}

func (m *mockMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	movie.ID = m.nextID
	m.nextID++
	m.movies[movie.ID] = movie
	return nil
}

func (m *mockMovieRepository) GetByID(ctx context.Context, id int64) (*domain.MovieWithDirector, error) {
	if mv, exists := m.movies[id]; exists {
		return m.withDirector(mv), nil
	}
	return nil, domain.ErrMovieNotFound
}

func (m *mockMovieRepository) List(ctx context.Context) ([]*domain.MovieWithDirector, error) {
	m.listCalls++
	result := make([]*domain.MovieWithDirector, 0, len(m.movies))
	for id := int64(1); id < m.nextID; id++ {
		if mv, exists := m.movies[id]; exists {
			result = append(result, m.withDirector(mv))
		}
	}
	return result, nil
}

func (m *mockMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	if _, exists := m.movies[movie.ID]; !exists {
		return domain.ErrMovieNotFound
	}
	m.movies[movie.ID] = movie
	return nil
}

func (m *mockMovieRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.movies[id]; !exists {
		return domain.ErrMovieNotFound
	}
	delete(m.movies, id)
	return nil
}

// mockCache is an in-memory repository.Cache recording deleted keys.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	getErr  error
	setErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if data, exists := m.entries[key]; exists {
		return data, nil
	}
	return nil, repository.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.DeleteMulti(ctx, key)
}

func (m *mockCache) DeleteMulti(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}
