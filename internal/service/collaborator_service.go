package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
)

// CollaboratorService defines the business logic for collaborators.
type CollaboratorService interface {
	List(ctx context.Context) ([]*model.Collaborator, error)
	Create(ctx context.Context, c *model.Collaborator) error
	Update(ctx context.Context, c *model.Collaborator) error
	Delete(ctx context.Context, id string) error
}

type collaboratorServiceImpl struct {
	repo repository.CollaboratorRepository
}

// NewCollaboratorService creates a CollaboratorService backed by the given
// repository.
func NewCollaboratorService(repo repository.CollaboratorRepository) CollaboratorService {
	return &collaboratorServiceImpl{repo: repo}
}

func (s *collaboratorServiceImpl) List(ctx context.Context) ([]*model.Collaborator, error) {
	return s.repo.List(ctx)
}

func (s *collaboratorServiceImpl) Create(ctx context.Context, c *model.Collaborator) error {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.repo.Create(ctx, c)
}

func (s *collaboratorServiceImpl) Update(ctx context.Context, c *model.Collaborator) error {
	c.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, c)
}

func (s *collaboratorServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
