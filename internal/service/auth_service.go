package service

import (
	"context"
	"errors"

	"github.com/nexora/backend/internal/model"
)

// ErrEmailTaken is returned by SignUp when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by SignInWithPassword for an unknown
// email, a wrong password, or an OAuth-only account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidResetToken is returned by ResetPassword for an unknown or
// expired token.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// GoogleUserInfo is the identity resolved from Google OAuth.
type GoogleUserInfo struct {
	Sub   string
	Email string
	Name  string
}

// GitHubUserInfo is the identity resolved from GitHub OAuth.
type GitHubUserInfo struct {
	ID    int64
	Login string
	Email string
	Name  string
}

// AuthService defines the identity business logic. All entry paths resolve
// to the same user record, so the admin gate sees one stable identity string
// per account.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*model.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.User, error)
	GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error)
	GetOrCreateUserFromGitHub(ctx context.Context, info *GitHubUserInfo) (*model.User, error)

	// RequestPasswordReset issues a reset token and emails it to the account.
	// Always returns nil for unknown emails (no account enumeration); email
	// delivery is best-effort.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
