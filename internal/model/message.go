package model

import "time"

// Message statuses. A message starts as pending and is moderated from the
// admin panel. Deletion is terminal; no other transition order is enforced.
const (
	MessageStatusPending  = "pending"
	MessageStatusApproved = "approved"
	MessageStatusRejected = "rejected"
)

// ValidMessageStatus reports whether s is one of the known moderation statuses.
func ValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusPending, MessageStatusApproved, MessageStatusRejected:
		return true
	}
	return false
}

// Message represents a message submitted via the contact form.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
