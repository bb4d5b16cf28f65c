package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/config"
)

// AuthHandler exchanges the shared access code for an operator session.
type AuthHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, logger: logger}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}

type loginRequest struct {
	Code string `json:"code"`
}

// Login handles POST /api/auth/login requests.
// A correct access code starts a fresh operator session; an incorrect one is a
// 401 with no detail about which part was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if !auth.CodeMatches(req.Code, h.cfg.Auth.AccessCode) {
		h.logger.Warn("Rejected login attempt", zap.String("remote_addr", r.RemoteAddr))
		_ = ErrorResponse(w, http.StatusUnauthorized, "invalid_code", "Invalid access code")
		return
	}

	session, err := auth.GetSession(r)
	if err != nil {
		// A stale or tampered cookie still decodes into a fresh session.
		h.logger.Debug("Replacing undecodable session", zap.Error(err))
	}

	operatorID := uuid.NewString()
	session.Values[auth.SessionKeyOperator] = operatorID
	if err := auth.SaveSession(r, w, session); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to start session")
		return
	}

	h.logger.Info("Operator logged in", zap.String("operator_id", operatorID))
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logout handles POST /api/auth/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := auth.GetSession(r)
	if err == nil {
		session.Options.MaxAge = -1
		delete(session.Values, auth.SessionKeyOperator)
		if err := auth.SaveSession(r, w, session); err != nil {
			h.logger.Error("Failed to clear session", zap.Error(err))
		}
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
