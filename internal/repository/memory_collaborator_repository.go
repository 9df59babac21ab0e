package repository

import (
	"context"
	"sync"

	"github.com/nexora/backend/internal/model"
)

// MemoryCollaboratorRepository is the process-lifetime fallback implementation
// of CollaboratorRepository.
type MemoryCollaboratorRepository struct {
	mu            sync.Mutex
	collaborators []*model.Collaborator
}

// NewMemoryCollaboratorRepository creates an empty in-memory collaborator store.
func NewMemoryCollaboratorRepository() *MemoryCollaboratorRepository {
	return &MemoryCollaboratorRepository{}
}

var _ CollaboratorRepository = (*MemoryCollaboratorRepository)(nil)

// List returns collaborators in insertion order, matching the Postgres
// implementation's created_at ASC ordering.
func (r *MemoryCollaboratorRepository) List(ctx context.Context) ([]*model.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Collaborator
	for _, c := range r.collaborators {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryCollaboratorRepository) FindByID(ctx context.Context, id string) (*model.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.collaborators {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryCollaboratorRepository) Create(ctx context.Context, c *model.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.collaborators = append(r.collaborators, &cp)
	return nil
}

func (r *MemoryCollaboratorRepository) Update(ctx context.Context, c *model.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.collaborators {
		if existing.ID == c.ID {
			cp := *c
			cp.CreatedAt = existing.CreatedAt
			r.collaborators[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryCollaboratorRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.collaborators {
		if c.ID == id {
			r.collaborators = append(r.collaborators[:i], r.collaborators[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
