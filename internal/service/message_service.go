package service

import (
	"context"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
)

// MessageService defines the business logic for the contact-message pipeline:
// intake, listing, moderation, deletion.
type MessageService interface {
	// Submit stores a new message and dispatches the admin notification.
	// The msg.ID, Status and CreatedAt are populated by the implementation.
	// Notification delivery is best-effort and never fails the submission.
	Submit(ctx context.Context, msg *model.Message) error

	// List returns messages newest-first according to the given options.
	List(ctx context.Context, opts repository.MessageListOptions) ([]*model.Message, error)

	// UpdateStatus moderates a message. Returns repository.ErrNotFound when
	// the id does not exist.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a message. Deleting a non-existent id is not an error.
	Delete(ctx context.Context, id string) error
}
