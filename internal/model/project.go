package model

import "time"

// ProjectLink is a labeled external link shown on a project card.
type ProjectLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project is a portfolio project entry.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TechStack   []string      `json:"tech_stack"`
	Links       []ProjectLink `json:"links"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
