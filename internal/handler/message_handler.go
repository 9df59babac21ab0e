package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nexora/backend/internal/model"
	"github.com/nexora/backend/internal/repository"
	"github.com/nexora/backend/internal/service"
)

const maxMessageLength = 5000

// MessageHandler handles contact form submission and the admin moderation
// surface.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a MessageHandler with the given service.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Submit handles POST /api/contact.
// All four fields are required and non-empty; message max 5000 chars.
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid_json"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Missing required fields"})
		return
	}

	if len([]rune(req.Message)) > maxMessageLength {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "message_too_long"})
		return
	}

	msg := &model.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.messageService.Submit(r.Context(), msg); err != nil {
		slog.Error("message submit failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "submit_failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": msg.ID})
}

// adminListResponse is the JSON response for GET /api/admin/messages.
type adminListResponse struct {
	Messages []*model.Message `json:"messages"`
}

// AdminList handles GET /api/admin/messages (admin-only).
// Supports query params: status (all/pending/approved/rejected), limit, offset.
func (h *MessageHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	opts := repository.MessageListOptions{
		Status: r.URL.Query().Get("status"),
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	messages, err := h.messageService.List(r.Context(), opts)
	if err != nil {
		slog.Error("list messages failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.Message{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}

// updateStatusRequest is the expected JSON body for the status endpoint.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/messages/{id}/status (admin-only).
func (h *MessageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Message ID required"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid_json"})
		return
	}
	if !model.ValidMessageStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid_status"})
		return
	}

	if err := h.messageService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "message_not_found"})
			return
		}
		slog.Error("update message status failed", "error", err, "message_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "update_failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete handles DELETE /api/admin/messages/{id} (admin-only).
// Deleting a non-existent id succeeds (idempotent).
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Message ID required"})
		return
	}

	if err := h.messageService.Delete(r.Context(), id); err != nil {
		slog.Error("delete message failed", "error", err, "message_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "delete_failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
