package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nexora/backend/internal/handler"
	"github.com/nexora/backend/internal/logging"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
	"github.com/nexora/backend/pkg/resend"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret-change-in-production-32bytes"
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		slog.Warn("ADMIN_EMAIL not set; the moderation surface will reject every identity")
	}

	fromEmail := os.Getenv("RESEND_FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "onboarding@resend.dev"
	}

	rateLimitPerMinute := 10
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimitPerMinute = n
		}
	}

	// Repositories. With DATABASE_URL set, everything persists to Postgres.
	// Without it, the server runs entirely in memory and state is lost on
	// restart; fine for local development, loud warning otherwise.
	var (
		db               repository.DB
		userRepo         repository.UserRepository
		messageRepo      repository.MessageRepository
		projectRepo      repository.ProjectRepository
		eventRepo        repository.EventRepository
		collaboratorRepo repository.CollaboratorRepository
	)

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := repository.NewPool(context.Background(), dbURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()

		pgMessages := repository.NewPgMessageRepository(pool)
		db = pgMessages
		messageRepo = pgMessages
		userRepo = repository.NewPgUserRepository(pool)
		projectRepo = repository.NewPgProjectRepository(pool)
		eventRepo = repository.NewPgEventRepository(pool)
		collaboratorRepo = repository.NewPgCollaboratorRepository(pool)
		slog.Info("using postgres storage")
	} else {
		memMessages := repository.NewMemoryMessageRepository()
		db = memMessages
		userRepo = repository.NewMemoryUserRepository()
		messageRepo = memMessages
		projectRepo = repository.NewMemoryProjectRepository()
		eventRepo = repository.NewMemoryEventRepository()
		collaboratorRepo = repository.NewMemoryCollaboratorRepository()
		slog.Warn("DATABASE_URL not set; using in-memory storage, data will not survive a restart")
	}

	mailer := resend.NewClient(os.Getenv("RESEND_API_KEY"))

	messageService := service.NewMessageService(messageRepo, mailer, fromEmail, adminEmail)
	authService := service.NewAuthService(userRepo, mailer, fromEmail, frontendURL)
	projectService := service.NewProjectService(projectRepo)
	eventService := service.NewEventService(eventRepo)
	collaboratorService := service.NewCollaboratorService(collaboratorRepo)

	gate := auth.NewAdminGate(adminEmail)
	sessionSecretBytes := auth.SessionSecretBytes(sessionSecret)

	h := handler.New(db, frontendURL)
	authHandler := handler.NewAuthHandler(authService, gate, handler.AuthConfig{
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GoogleRedirectPath: "/api/auth/google/callback",
		GitHubRedirectPath: "/api/auth/github/callback",
		SessionSecret:      sessionSecret,
		FrontendURL:        frontendURL,
	})
	meHandler := handler.NewMeHandler(userRepo, gate)
	messageHandler := handler.NewMessageHandler(messageService)
	projectHandler := handler.NewProjectHandler(projectService)
	eventHandler := handler.NewEventHandler(eventService)
	collaboratorHandler := handler.NewCollaboratorHandler(collaboratorService)

	requireAuth := auth.RequireAuth(sessionSecretBytes)
	requireAdmin := auth.RequireAdmin(gate, func(ctx context.Context, userID string) (string, error) {
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return user.Email, nil
	})
	wrapAdmin := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(fn))
	}

	contactLimiter := handler.NewRateLimiter(rateLimitPerMinute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	mux.Handle("POST /api/contact", contactLimiter.Middleware(http.HandlerFunc(messageHandler.Submit)))

	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/reset-request", authHandler.ResetRequest)
	mux.HandleFunc("POST /api/auth/reset", authHandler.Reset)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("GET /api/auth/github/login", authHandler.GitHubLoginURL)
	mux.HandleFunc("GET /api/auth/github/callback", authHandler.GitHubCallback)

	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(meHandler.Me)))

	// Public portfolio content
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/events", eventHandler.List)
	mux.HandleFunc("GET /api/collaborators", collaboratorHandler.List)

	// Moderation surface (admin only)
	mux.Handle("GET /api/admin/messages", wrapAdmin(messageHandler.AdminList))
	mux.Handle("PATCH /api/admin/messages/{id}/status", wrapAdmin(messageHandler.UpdateStatus))
	mux.Handle("DELETE /api/admin/messages/{id}", wrapAdmin(messageHandler.Delete))

	// Portfolio content management (admin only)
	mux.Handle("POST /api/admin/projects", wrapAdmin(projectHandler.Create))
	mux.Handle("PUT /api/admin/projects/{id}", wrapAdmin(projectHandler.Update))
	mux.Handle("DELETE /api/admin/projects/{id}", wrapAdmin(projectHandler.Delete))
	mux.Handle("POST /api/admin/events", wrapAdmin(eventHandler.Create))
	mux.Handle("PUT /api/admin/events/{id}", wrapAdmin(eventHandler.Update))
	mux.Handle("DELETE /api/admin/events/{id}", wrapAdmin(eventHandler.Delete))
	mux.Handle("POST /api/admin/collaborators", wrapAdmin(collaboratorHandler.Create))
	mux.Handle("PUT /api/admin/collaborators/{id}", wrapAdmin(collaboratorHandler.Update))
	mux.Handle("DELETE /api/admin/collaborators/{id}", wrapAdmin(collaboratorHandler.Delete))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
