package model

import "time"

// Event types.
const (
	EventTypeUpcoming = "upcoming"
	EventTypePast     = "past"
)

// Event is a workshop, talk, or other portfolio event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // ISO date (YYYY-MM-DD)
	Description string    `json:"description"`
	Type        string    `json:"type"` // "upcoming" | "past"
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
