package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/pkg/resend"
)

// notifyTimeout bounds the background notification dispatch. The goroutine
// detaches from the request context so a fast HTTP response does not cancel
// the email.
const notifyTimeout = 5 * time.Second

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo      repository.MessageRepository
	mailer    resend.Client
	fromEmail string
	toEmail   string
}

// NewMessageService creates a MessageService backed by the given repository
// and email transport. Notifications go to toEmail (the admin address).
func NewMessageService(repo repository.MessageRepository, mailer resend.Client, fromEmail, toEmail string) MessageService {
	return &messageServiceImpl{
		repo:      repo,
		mailer:    mailer,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// Submit assigns an id and timestamp, persists the message as pending, then
// dispatches the admin notification in the background. A notification failure
// is logged and absorbed; only a store failure fails the submission.
func (s *messageServiceImpl) Submit(ctx context.Context, msg *model.Message) error {
	msg.ID = uuid.NewString()
	msg.Status = model.MessageStatusPending
	msg.CreatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, msg); err != nil {
		return fmt.Errorf("save message: %w", err)
	}

	notification := *msg
	go s.notify(&notification)
	return nil
}

// notify sends the admin notification email for a stored message.
func (s *messageServiceImpl) notify(msg *model.Message) {
	if s.toEmail == "" {
		slog.Warn("no notification recipient configured, notification skipped", "message_id", msg.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	email := resend.Email{
		From:    s.fromEmail,
		To:      s.toEmail,
		Subject: "New Contact: " + msg.Subject,
		HTML:    notificationHTML(msg),
	}

	err := s.mailer.Send(ctx, email)
	switch {
	case err == nil:
		slog.Info("notification sent", "message_id", msg.ID, "to", s.toEmail)
	case errors.Is(err, resend.ErrNotConfigured):
		slog.Warn("email service not configured, notification skipped", "message_id", msg.ID)
	default:
		slog.Error("notification send failed", "error", err, "message_id", msg.ID)
	}
}

// notificationHTML renders the admin notification body. User input is
// escaped before interpolation.
func notificationHTML(msg *model.Message) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>New Message</h2>
<p><b>Name:</b> %s</p>
<p><b>Email:</b> %s</p>
<p><b>Subject:</b> %s</p>
<hr/>
<div style="white-space: pre-wrap;">%s</div>
<hr/>
<small>Received %s</small>
</div>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Message),
		msg.CreatedAt.Format(time.RFC1123),
	)
}

// List returns messages newest-first according to the given options.
func (s *messageServiceImpl) List(ctx context.Context, opts repository.MessageListOptions) ([]*model.Message, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus changes only the status field of a message.
func (s *messageServiceImpl) UpdateStatus(ctx context.Context, id, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a message; idempotent per the repository contract.
func (s *messageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
