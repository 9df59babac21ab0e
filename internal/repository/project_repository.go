package repository

import (
	"context"

	"github.com/nexora/backend/internal/model"
)

// ProjectRepository is the persistence interface for portfolio projects.
// ID and timestamps are assigned by the caller before Create.
type ProjectRepository interface {
	List(ctx context.Context) ([]*model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	// Update replaces all editable fields. Returns ErrNotFound when the id
	// does not exist.
	Update(ctx context.Context, p *model.Project) error
	// Delete removes a project. Returns ErrNotFound when the id does not
	// exist (content edits report missing targets, unlike message deletion).
	Delete(ctx context.Context, id string) error
}
