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

// EventHandler handles portfolio event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/events (public).
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		slog.Error("list events failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type eventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Location    string `json:"location"`
}

// Create handles POST /api/admin/events (admin-only).
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Title == "" || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title_and_date_required"})
		return
	}

	event := &model.Event{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
	}
	if err := h.eventService.Create(r.Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_event_type"})
			return
		}
		slog.Error("create event failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create_failed"})
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/admin/events/{id} (admin-only).
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event_id_required"})
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_json"})
		return
	}
	if req.Title == "" || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title_and_date_required"})
		return
	}

	event := &model.Event{
		ID:          id,
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
	}
	if err := h.eventService.Update(r.Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_event_type"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "event_not_found"})
			return
		}
		slog.Error("update event failed", "error", err, "event_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update_failed"})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/admin/events/{id} (admin-only).
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event_id_required"})
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "event_not_found"})
			return
		}
		slog.Error("delete event failed", "error", err, "event_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete_failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
