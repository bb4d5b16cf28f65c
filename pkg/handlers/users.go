package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/services"
)

// UsersHandler covers the typed user listing and the active flag toggle; the
// rest of user management goes through the generic editor.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{userService: userService, logger: logger}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/users", auth.RequireSession(h.List))
	mux.HandleFunc("POST /api/admin/users/{id}/toggle-active", auth.RequireSession(h.ToggleActive))
}

// List handles GET /api/admin/users requests.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// ToggleActive handles POST /api/admin/users/{id}/toggle-active requests.
// Flips the user's active flag and returns the new value.
func (h *UsersHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid user id")
		return
	}

	active, err := h.userService.ToggleActive(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to toggle user active flag",
			zap.String("user_id", id.String()),
			zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": active})
}
