package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/services"
)

// DashboardHandler serves the console's usage statistics.
type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard handler's routes on the given mux.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/dashboard/summary", auth.RequireSession(h.Summary))
	mux.HandleFunc("GET /api/admin/dashboard/series", auth.RequireSession(h.Series))
}

// Summary handles GET /api/admin/dashboard/summary requests.
// Returns total posts, total users and users active today.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard summary", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, summary)
}

// Series handles GET /api/admin/dashboard/series requests.
// Returns per-day post and signup counts for the current calendar month, one
// point per day including days with no activity.
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	series, err := h.dashboardService.MonthlySeries(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard series", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"series": series})
}
