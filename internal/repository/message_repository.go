package repository

import (
	"context"

	"github.com/nexora/backend/internal/model"
)

// MessageListOptions carries filter and pagination parameters for listing
// contact messages. A zero Limit means no limit.
type MessageListOptions struct {
	// Status filters by moderation status: "", "all", "pending", "approved",
	// "rejected". Empty string and "all" return all messages.
	Status string
	Limit  int
	Offset int
}

// MessageRepository is the persistence interface for contact messages.
// Two implementations exist: PgMessageRepository (durable) and
// MemoryMessageRepository (process-lifetime fallback). Callers must not
// depend on which one is active.
type MessageRepository interface {
	// Save inserts a new message. ID, Status and CreatedAt are expected to be
	// set by the caller.
	Save(ctx context.Context, msg *model.Message) error

	// List returns messages newest-first.
	List(ctx context.Context, opts MessageListOptions) ([]*model.Message, error)

	// Delete removes a message by id. Deleting a non-existent id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// UpdateStatus changes the status of a message. Returns ErrNotFound when
	// the id does not exist.
	UpdateStatus(ctx context.Context, id, status string) error
}
