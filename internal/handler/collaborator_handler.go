package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
)

// CollaboratorHandler handles collaborator endpoints.
type CollaboratorHandler struct {
	collaboratorService service.CollaboratorService
}

// NewCollaboratorHandler creates a CollaboratorHandler.
func NewCollaboratorHandler(collaboratorService service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{collaboratorService: collaboratorService}
}

// List handles GET /api/collaborators (public).
func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	collaborators, err := h.collaboratorService.List(r.Context())
	if err != nil {
		slog.Error("list collaborators failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
		return
	}
	if collaborators == nil {
		collaborators = []*model.Collaborator{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"collaborators": collaborators})
}

type collaboratorRequest struct {
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Bio         string             `json:"bio"`
	SocialLinks []model.SocialLink `json:"social_links"`
}

// Create handles POST /api/admin/collaborators (admin-only).
func (h *CollaboratorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req collaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name_required"})
		return
	}

	collaborator := &model.Collaborator{
		Name:        req.Name,
		Role:        req.Role,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
	}
	if err := h.collaboratorService.Create(r.Context(), collaborator); err != nil {
		slog.Error("create collaborator failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create_failed"})
		return
	}
	writeJSON(w, http.StatusCreated, collaborator)
}

// Update handles PUT /api/admin/collaborators/{id} (admin-only).
func (h *CollaboratorHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "collaborator_id_required"})
		return
	}

	var req collaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name_required"})
		return
	}

	collaborator := &model.Collaborator{
		ID:          id,
		Name:        req.Name,
		Role:        req.Role,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
	}
	if err := h.collaboratorService.Update(r.Context(), collaborator); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "collaborator_not_found"})
			return
		}
		slog.Error("update collaborator failed", "error", err, "collaborator_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update_failed"})
		return
	}
	writeJSON(w, http.StatusOK, collaborator)
}

// Delete handles DELETE /api/admin/collaborators/{id} (admin-only).
func (h *CollaboratorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "collaborator_id_required"})
		return
	}

	if err := h.collaboratorService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "collaborator_not_found"})
			return
		}
		slog.Error("delete collaborator failed", "error", err, "collaborator_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete_failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
