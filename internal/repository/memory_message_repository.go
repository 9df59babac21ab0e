package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/nexora/backend/internal/model"
)

// MemoryMessageRepository is the in-memory fallback implementation of
// MessageRepository, used when no durable store is configured. Contents are
// process-lifetime only and are lost on restart; it is also not usable across
// multiple processes. Postgres is the production store.
type MemoryMessageRepository struct {
	mu       sync.Mutex
	messages []*model.Message // insertion order (oldest first)
}

// NewMemoryMessageRepository creates an empty in-memory message store.
func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

var _ MessageRepository = (*MemoryMessageRepository)(nil)

// Ping always succeeds (DB interface).
func (r *MemoryMessageRepository) Ping(ctx context.Context) error {
	return nil
}

// Save appends a copy of the message.
func (r *MemoryMessageRepository) Save(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

// List returns messages newest-first, optionally filtered by status.
func (r *MemoryMessageRepository) List(ctx context.Context, opts MessageListOptions) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := strings.TrimSpace(opts.Status)
	all := status == "" || status == "all"

	var out []*model.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if !all && m.Status != status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Delete removes the message with the given id, if present.
func (r *MemoryMessageRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpdateStatus changes the status of the message with the given id.
func (r *MemoryMessageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.Status = status
			return nil
		}
	}
	return ErrNotFound
}
