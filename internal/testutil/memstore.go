package testutil

import (
	"context"
	"sync"
	"time"

	"portfolio-api/internal/models"
	"portfolio-api/internal/store"
)

// MemoryStore is an in-memory store.ProjectStore with the same semantics as
// the Postgres implementation. Ids are never reused.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]models.Project
	order    []int64
	clock    store.Clock

	// FailWith makes every call return this error when set.
	FailWith error
}

// NewMemoryStore returns an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		projects: map[int64]models.Project{},
		clock:    time.Now,
	}
}

// SetClock replaces the time source.
func (m *MemoryStore) SetClock(c store.Clock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = c
}

// Len returns the number of stored projects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.projects)
}

func (m *MemoryStore) Create(_ context.Context, in models.CreateProjectRequest) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	now := m.clock.Now()
	p := models.Project{
		ID:          m.nextID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		VideoURL:    copyString(models.NullIfEmpty(in.VideoURL)),
		GithubURL:   copyString(models.NullIfEmpty(in.GithubURL)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextID++
	m.projects[p.ID] = p
	m.order = append(m.order, p.ID)
	return clone(p), nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryStore) List(_ context.Context, opts store.ListOptions) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := []models.Project{}
	for _, id := range m.order {
		if p, ok := m.projects[id]; ok {
			out = append(out, *clone(p))
		}
	}
	return store.ApplyListOptions(out, opts), nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, patch models.UpdateProjectRequest) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	patch.Apply(&p)
	p.VideoURL = copyString(p.VideoURL)
	p.GithubURL = copyString(p.GithubURL)
	p.UpdatedAt = store.Touch(p.CreatedAt, m.clock.Now())
	m.projects[id] = p
	return clone(p), nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.projects, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FailWith
}

func clone(p models.Project) *models.Project {
	p.VideoURL = copyString(p.VideoURL)
	p.GithubURL = copyString(p.GithubURL)
	return &p
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ store.ProjectStore = (*MemoryStore)(nil)
