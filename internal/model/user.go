package model

import "time"

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	PasswordHash      string     `json:"-"`
	GoogleID          string     `json:"-"`
	GitHubID          string     `json:"-"`
	ResetTokenHash    string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasPassword returns true if the account has a password set
// (OAuth-only accounts do not).
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
