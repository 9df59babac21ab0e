package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexora/backend/internal/model"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository backed by the given pool.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ UserRepository = (*PgUserRepository)(nil)

const userSelectCols = `id, email, name, password_hash, google_id, github_id, reset_token_hash, reset_token_expires, created_at, updated_at`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	var passwordHash, googleID, githubID, resetTokenHash *string
	if err := scan(&u.ID, &u.Email, &u.Name, &passwordHash, &googleID, &githubID, &resetTokenHash, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	if githubID != nil {
		u.GitHubID = *githubID
	}
	if resetTokenHash != nil {
		u.ResetTokenHash = *resetTokenHash
	}
	return &u, nil
}

func (r *PgUserRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE `+column+` = $1`, value)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *PgUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.findBy(ctx, "google_id", googleID)
}

func (r *PgUserRepository) FindByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	return r.findBy(ctx, "github_id", githubID)
}

func (r *PgUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	return r.findBy(ctx, "reset_token_hash", tokenHash)
}

// Create inserts a new users row and populates ID and timestamps from the
// RETURNING clause.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, google_id, github_id)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id, created_at, updated_at`,
		user.Email, user.Name, user.PasswordHash, user.GoogleID, user.GitHubID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// UpdateProviderID links an OAuth provider id to an existing account.
// column must be one of "google_id" / "github_id".
func (r *PgUserRepository) UpdateProviderID(ctx context.Context, userID, column, value string) error {
	if column != "google_id" && column != "github_id" {
		return fmt.Errorf("invalid provider column: %s", column)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET `+column+` = $1, updated_at = NOW() WHERE id = $2`, value, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET reset_token_hash = $1, reset_token_expires = $2, updated_at = NOW() WHERE id = $3`,
		tokenHash, expires, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
