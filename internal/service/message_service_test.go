package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/pkg/resend"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockMessageRepository struct {
	saveFunc         func(ctx context.Context, msg *model.Message) error
	listFunc         func(ctx context.Context, opts repository.MessageListOptions) ([]*model.Message, error)
	deleteFunc       func(ctx context.Context, id string) error
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *model.Message) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) List(ctx context.Context, opts repository.MessageListOptions) ([]*model.Message, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockMessageRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, email resend.Email) error
	sent     chan resend.Email
}

func newMockMailer(sendFunc func(ctx context.Context, email resend.Email) error) *mockMailer {
	return &mockMailer{sendFunc: sendFunc, sent: make(chan resend.Email, 8)}
}

func (m *mockMailer) Send(ctx context.Context, email resend.Email) error {
	var err error
	if m.sendFunc != nil {
		err = m.sendFunc(ctx, email)
	}
	m.sent <- email
	return err
}

func waitForEmail(t *testing.T, m *mockMailer) resend.Email {
	t.Helper()
	select {
	case email := <-m.sent:
		return email
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification dispatch")
		return resend.Email{}
	}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestMessageService_Submit_SetsPendingStatusAndID(t *testing.T) {
	var saved *model.Message
	repo := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			saved = msg
			return nil
		},
	}
	mailer := newMockMailer(nil)
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	msg := &model.Message{Name: "Ann", Email: "ann@x.com", Subject: "Hello", Message: "Hi there"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if saved.ID == "" {
		t.Error("expected a non-empty id")
	}
	if saved.Status != model.MessageStatusPending {
		t.Errorf("expected status pending, got %q", saved.Status)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	waitForEmail(t, mailer)
}

func TestMessageService_Submit_UniqueIDs(t *testing.T) {
	repo := &mockMessageRepository{}
	mailer := newMockMailer(nil)
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := &model.Message{Name: "A", Email: "a@x.com", Subject: "s", Message: "m"}
		if err := svc.Submit(context.Background(), msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[msg.ID] {
			t.Fatalf("duplicate id %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

// TestMessageService_Submit_NotificationFailureDoesNotFailSubmission is the
// core best-effort property: a broken email transport must never surface to
// the submitter.
func TestMessageService_Submit_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	repo := &mockMessageRepository{}
	mailer := newMockMailer(func(ctx context.Context, email resend.Email) error {
		return errors.New("transport down")
	})
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	msg := &model.Message{Name: "Ann", Email: "ann@x.com", Subject: "Hello", Message: "Hi"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("submission must not fail on notification error, got %v", err)
	}
	waitForEmail(t, mailer)
}

func TestMessageService_Submit_NotConfiguredMailerIsNonFatal(t *testing.T) {
	repo := &mockMessageRepository{}
	mailer := newMockMailer(func(ctx context.Context, email resend.Email) error {
		return resend.ErrNotConfigured
	})
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	msg := &model.Message{Name: "Ann", Email: "ann@x.com", Subject: "Hello", Message: "Hi"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForEmail(t, mailer)
}

func TestMessageService_Submit_StoreErrorFailsSubmission(t *testing.T) {
	repo := &mockMessageRepository{
		saveFunc: func(ctx context.Context, msg *model.Message) error {
			return errors.New("db write failed")
		},
	}
	mailer := newMockMailer(nil)
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	msg := &model.Message{Name: "Ann", Email: "ann@x.com", Subject: "Hello", Message: "Hi"}
	if err := svc.Submit(context.Background(), msg); err == nil {
		t.Fatal("expected error when store fails")
	}

	// No notification for a message that never committed.
	select {
	case <-mailer.sent:
		t.Error("notification must not be sent when the save fails")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMessageService_Submit_NotificationContent(t *testing.T) {
	repo := &mockMessageRepository{}
	mailer := newMockMailer(nil)
	svc := NewMessageService(repo, mailer, "noreply@example.com", "admin@example.com")

	msg := &model.Message{
		Name:    "Ann <script>",
		Email:   "ann@x.com",
		Subject: "Hello",
		Message: "Hi <b>there</b>",
	}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	email := waitForEmail(t, mailer)
	if email.To != "admin@example.com" {
		t.Errorf("expected recipient admin@example.com, got %q", email.To)
	}
	if email.From != "noreply@example.com" {
		t.Errorf("expected sender noreply@example.com, got %q", email.From)
	}
	if email.Subject != "New Contact: Hello" {
		t.Errorf("unexpected subject %q", email.Subject)
	}
	if strings.Contains(email.HTML, "<script>") {
		t.Error("user input must be escaped in the notification body")
	}
	if !strings.Contains(email.HTML, "ann@x.com") {
		t.Error("expected sender email in the notification body")
	}
}

// ---------------------------------------------------------------------------
// Moderation passthrough
// ---------------------------------------------------------------------------

func TestMessageService_UpdateStatus_Forwards(t *testing.T) {
	var gotID, gotStatus string
	repo := &mockMessageRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	svc := NewMessageService(repo, newMockMailer(nil), "from@example.com", "to@example.com")

	if err := svc.UpdateStatus(context.Background(), "msg-1", model.MessageStatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "msg-1" || gotStatus != model.MessageStatusApproved {
		t.Errorf("expected (msg-1, approved), got (%s, %s)", gotID, gotStatus)
	}
}

func TestMessageService_UpdateStatus_NotFound(t *testing.T) {
	repo := &mockMessageRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewMessageService(repo, newMockMailer(nil), "from@example.com", "to@example.com")

	err := svc.UpdateStatus(context.Background(), "missing", model.MessageStatusApproved)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMessageService_List_Forwards(t *testing.T) {
	want := []*model.Message{{ID: "1", Subject: "s"}}
	var gotOpts repository.MessageListOptions
	repo := &mockMessageRepository{
		listFunc: func(ctx context.Context, opts repository.MessageListOptions) ([]*model.Message, error) {
			gotOpts = opts
			return want, nil
		},
	}
	svc := NewMessageService(repo, newMockMailer(nil), "from@example.com", "to@example.com")

	got, err := svc.List(context.Background(), repository.MessageListOptions{Status: "pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("unexpected result %v", got)
	}
	if gotOpts.Status != "pending" {
		t.Errorf("expected status filter forwarded, got %q", gotOpts.Status)
	}
}

func TestMessageService_Submit_NoRecipientSkipsNotification(t *testing.T) {
	repo := &mockMessageRepository{}
	mailer := newMockMailer(nil)
	svc := NewMessageService(repo, mailer, "noreply@example.com", "")

	msg := &model.Message{Name: "Ann", Email: "ann@x.com", Subject: "Hello", Message: "Hi"}
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("submission must succeed without a recipient: %v", err)
	}

	// Nothing should reach the mailer when no recipient is configured.
	select {
	case <-mailer.sent:
		t.Error("notification must not be sent without a recipient")
	case <-time.After(100 * time.Millisecond):
	}
}
