package repository

import (
	"context"

	"github.com/nexora/backend/internal/model"
)

// CollaboratorRepository is the persistence interface for collaborators.
// ID and timestamps are assigned by the caller before Create.
type CollaboratorRepository interface {
	List(ctx context.Context) ([]*model.Collaborator, error)
	FindByID(ctx context.Context, id string) (*model.Collaborator, error)
	Create(ctx context.Context, c *model.Collaborator) error
	Update(ctx context.Context, c *model.Collaborator) error
	Delete(ctx context.Context, id string) error
}
