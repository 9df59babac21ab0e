package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/pkg/resend"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// AuthServiceImpl is the production implementation of AuthService.
type AuthServiceImpl struct {
	userRepo    repository.UserRepository
	mailer      resend.Client
	fromEmail   string
	frontendURL string
}

// NewAuthService creates an AuthServiceImpl. The mailer is used for password
// reset emails only.
func NewAuthService(userRepo repository.UserRepository, mailer resend.Client, fromEmail, frontendURL string) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		mailer:      mailer,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
	}
}

// SignUp registers a new password account.
func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", user.ID, "provider", "password")
	return user, nil
}

// SignInWithPassword verifies email/password credentials.
func (s *AuthServiceImpl) SignInWithPassword(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetOrCreateUserFromGoogle resolves a Google identity to a user, linking to
// an existing account with the same email when present.
func (s *AuthServiceImpl) GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	u, err := s.userRepo.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		return u, nil
	}

	// Same email already registered via another path: link instead of
	// creating a duplicate identity.
	if existing, err := s.userRepo.FindByEmail(ctx, info.Email); err == nil {
		if err := s.userRepo.UpdateProviderID(ctx, existing.ID, "google_id", info.Sub); err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
		existing.GoogleID = info.Sub
		return existing, nil
	}

	newUser := &model.User{
		Email:    info.Email,
		Name:     info.Name,
		GoogleID: info.Sub,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", newUser.ID, "provider", "google")
	return newUser, nil
}

// GetOrCreateUserFromGitHub resolves a GitHub identity to a user.
func (s *AuthServiceImpl) GetOrCreateUserFromGitHub(ctx context.Context, info *GitHubUserInfo) (*model.User, error) {
	githubID := fmt.Sprintf("%d", info.ID)
	u, err := s.userRepo.FindByGitHubID(ctx, githubID)
	if err == nil {
		return u, nil
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	email := info.Email
	if email == "" {
		email = info.Login + "@users.noreply.github.com"
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		if err := s.userRepo.UpdateProviderID(ctx, existing.ID, "github_id", githubID); err != nil {
			return nil, fmt.Errorf("link github account: %w", err)
		}
		existing.GitHubID = githubID
		return existing, nil
	}

	newUser := &model.User{
		Email:    email,
		Name:     name,
		GitHubID: githubID,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", newUser.ID, "provider", "github")
	return newUser, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RequestPasswordReset issues a reset token for the account and emails it.
// Unknown emails return nil so the endpoint does not leak which addresses
// are registered.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("password reset requested for unknown email")
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hashResetToken(token), expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := s.frontendURL + "/auth/reset?token=" + token
	mail := resend.Email{
		From:    s.fromEmail,
		To:      user.Email,
		Subject: "Password reset",
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Reset your password here: <a href="%s">%s</a></p><p>The link expires in one hour.</p>`,
			html.EscapeString(user.Name), resetURL, resetURL),
	}
	if err := s.mailer.Send(ctx, mail); err != nil {
		if errors.Is(err, resend.ErrNotConfigured) {
			slog.Warn("email service not configured, reset email skipped", "user_id", user.ID)
		} else {
			slog.Error("reset email send failed", "error", err, "user_id", user.ID)
		}
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password hash.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetTokenHash(ctx, hashResetToken(token))
	if err != nil {
		return ErrInvalidResetToken
	}
	if user.ResetTokenExpires == nil || time.Now().UTC().After(*user.ResetTokenExpires) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}
