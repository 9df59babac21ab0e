package repository

import (
	"context"
	"sync"

	"github.com/nexora/backend/internal/model"
)

// MemoryProjectRepository is the process-lifetime fallback implementation of
// ProjectRepository.
type MemoryProjectRepository struct {
	mu       sync.Mutex
	projects []*model.Project
}

// NewMemoryProjectRepository creates an empty in-memory project store.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{}
}

var _ ProjectRepository = (*MemoryProjectRepository)(nil)

func (r *MemoryProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Project
	for i := len(r.projects) - 1; i >= 0; i-- {
		cp := *r.projects[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryProjectRepository) Create(ctx context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects = append(r.projects, &cp)
	return nil
}

func (r *MemoryProjectRepository) Update(ctx context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.projects {
		if existing.ID == p.ID {
			cp := *p
			cp.CreatedAt = existing.CreatedAt
			r.projects[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
