package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
)

// ErrInvalidEventType is returned when an event type is not
// "upcoming" or "past".
var ErrInvalidEventType = errors.New("invalid event type")

// EventService defines the business logic for portfolio events.
type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
}

type eventServiceImpl struct {
	repo repository.EventRepository
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(repo repository.EventRepository) EventService {
	return &eventServiceImpl{repo: repo}
}

func validEventType(t string) bool {
	return t == model.EventTypeUpcoming || t == model.EventTypePast
}

func (s *eventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *eventServiceImpl) Create(ctx context.Context, e *model.Event) error {
	if !validEventType(e.Type) {
		return ErrInvalidEventType
	}
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.repo.Create(ctx, e)
}

func (s *eventServiceImpl) Update(ctx context.Context, e *model.Event) error {
	if !validEventType(e.Type) {
		return ErrInvalidEventType
	}
	e.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, e)
}

func (s *eventServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
