package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/nexora/backend/internal/model"
)

// MemoryEventRepository is the process-lifetime fallback implementation of
// EventRepository.
type MemoryEventRepository struct {
	mu     sync.Mutex
	events []*model.Event
}

// NewMemoryEventRepository creates an empty in-memory event store.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{}
}

var _ EventRepository = (*MemoryEventRepository)(nil)

// List returns events newest-first by event date, matching the Postgres
// implementation's ordering.
func (r *MemoryEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryEventRepository) Create(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.events = append(r.events, &cp)
	return nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.events {
		if existing.ID == e.ID {
			cp := *e
			cp.CreatedAt = existing.CreatedAt
			r.events[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
