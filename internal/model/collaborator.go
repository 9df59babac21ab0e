package model

import "time"

// SocialLink points to a collaborator's profile on an external platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Collaborator is a person featured on the portfolio's collaborators section.
type Collaborator struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        string       `json:"role"`
	Bio         string       `json:"bio,omitempty"`
	SocialLinks []SocialLink `json:"social_links,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
