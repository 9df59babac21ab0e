package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/nexora/backend/internal/model"
)

// MemoryUserRepository is the in-memory fallback implementation of
// UserRepository, used when no durable store is configured so the admin can
// still sign up and reach the moderation surface. Process-lifetime only.
type MemoryUserRepository struct {
	mu    sync.Mutex
	seq   int
	users []*model.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) find(match func(*model.User) bool) (*model.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.GoogleID != "" && u.GoogleID == googleID })
}

func (r *MemoryUserRepository) FindByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.GitHubID != "" && u.GitHubID == githubID })
}

func (r *MemoryUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.ResetTokenHash != "" && u.ResetTokenHash == tokenHash })
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC()
	user.ID = "mem-user-" + strconv.Itoa(r.seq)
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *MemoryUserRepository) update(id string, apply func(*model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			apply(u)
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryUserRepository) UpdateProviderID(ctx context.Context, userID, column, value string) error {
	return r.update(userID, func(u *model.User) {
		switch column {
		case "google_id":
			u.GoogleID = value
		case "github_id":
			u.GitHubID = value
		}
	})
}

func (r *MemoryUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	return r.update(userID, func(u *model.User) {
		u.ResetTokenHash = tokenHash
		exp := expires
		u.ResetTokenExpires = &exp
	})
}

func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.update(userID, func(u *model.User) {
		u.PasswordHash = passwordHash
		u.ResetTokenHash = ""
		u.ResetTokenExpires = nil
	})
}
