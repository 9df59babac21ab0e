package handler

import (
	"net/http"
	"time"

	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/pkg/auth"
)

// MeHandler returns the current user's profile.
type MeHandler struct {
	userRepo repository.UserRepository
	gate     *auth.AdminGate
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(userRepo repository.UserRepository, gate *auth.AdminGate) *MeHandler {
	return &MeHandler{userRepo: userRepo, gate: gate}
}

// meResponse is the GET /api/me response (User + role).
type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Me handles GET /api/me. The route runs behind RequireAuth, so the session
// has already been validated when this executes.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		// Session names a user that no longer exists; sign out.
		auth.ClearSessionCookie(w)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_session"})
		return
	}

	resp := meResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if h.gate.IsAdmin(user.Email) {
		resp.Role = "admin"
	}

	writeJSON(w, http.StatusOK, resp)
}
