package repository

import (
	"context"

	"github.com/nexora/backend/internal/model"
)

// EventRepository is the persistence interface for portfolio events.
// ID and timestamps are assigned by the caller before Create.
type EventRepository interface {
	List(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
}
