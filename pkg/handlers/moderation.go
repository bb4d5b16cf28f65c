package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/services"
)

// ModerationHandler serves the verification request queue and its audit trail.
type ModerationHandler struct {
	moderationService services.ModerationService
	auditService      services.AuditService
	logger            *zap.Logger
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(
	moderationService services.ModerationService,
	auditService services.AuditService,
	logger *zap.Logger,
) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		auditService:      auditService,
		logger:            logger,
	}
}

// RegisterRoutes registers the moderation handler's routes on the given mux.
func (h *ModerationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/applications", auth.RequireSession(h.ListPending))
	mux.HandleFunc("POST /api/admin/applications/{id}/resolve", auth.RequireSession(h.Resolve))
	mux.HandleFunc("GET /api/admin/audit-log", auth.RequireSession(h.AuditLog))
}

// ListPending handles GET /api/admin/applications requests.
// Returns only applications that have not yet been resolved.
func (h *ModerationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	apps, err := h.moderationService.ListPending(r.Context())
	if err != nil {
		h.logger.Error("Failed to list pending applications", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

type resolveRequest struct {
	Decision string `json:"decision"`
}

// Resolve handles POST /api/admin/applications/{id}/resolve requests.
// Moves the application into a terminal state and records the decision in the
// audit log; resolving an already-resolved application is a 409.
func (h *ModerationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid application id")
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Decision == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A decision is required")
		return
	}

	if err := h.moderationService.Resolve(r.Context(), id, req.Decision, auth.OperatorID(r)); err != nil {
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AuditLog handles GET /api/admin/audit-log requests.
// Returns the most recent moderation log entries, newest first. An optional
// limit query parameter caps the result.
func (h *ModerationHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.auditService.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch audit log", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
