package repository

import (
	"context"
	"time"

	"github.com/nexora/backend/internal/model"
)

// DB is the liveness interface used by the health endpoint.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository is the persistence interface for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByGitHubID(ctx context.Context, githubID string) (*model.User, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProviderID(ctx context.Context, userID, column, value string) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error
	// UpdatePassword sets a new password hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
