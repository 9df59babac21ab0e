package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
	"github.com/nexora/backend/pkg/auth"
)

// ProjectHandler handles portfolio project endpoints. List is public; the
// write operations sit behind the admin gate.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/projects (public).
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

type projectRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	TechStack   []string            `json:"tech_stack"`
	Links       []model.ProjectLink `json:"links"`
}

// Create handles POST /api/admin/projects (admin-only).
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title_required"})
		return
	}

	project := &model.Project{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Links:       req.Links,
	}
	if err := h.projectService.Create(r.Context(), project); err != nil {
		slog.Error("create project failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create_failed"})
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// Update handles PUT /api/admin/projects/{id} (admin-only).
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project_id_required"})
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title_required"})
		return
	}

	project := &model.Project{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Links:       req.Links,
	}
	if err := h.projectService.Update(r.Context(), project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "project_not_found"})
			return
		}
		slog.Error("update project failed", "error", err, "project_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update_failed"})
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/admin/projects/{id} (admin-only).
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "project_id_required"})
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "project_not_found"})
			return
		}
		slog.Error("delete project failed", "error", err, "project_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete_failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// requireAdmin re-checks the access gate inside the handler, in addition to
// the route middleware.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "access_denied"})
		return false
	}
	return true
}
