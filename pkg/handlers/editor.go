package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/editor"
	"github.com/mycoscan/mycoscan-admin/pkg/models"
)

// EditorHandler exposes the entity editor over HTTP. Each operator gets an
// independent editor session per entity, keyed by their session cookie, so two
// operators editing the same collection never see each other's form state.
type EditorHandler struct {
	manager *editor.Manager
	logger  *zap.Logger
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(manager *editor.Manager, logger *zap.Logger) *EditorHandler {
	return &EditorHandler{manager: manager, logger: logger}
}

// RegisterRoutes registers the editor handler's routes on the given mux.
// All routes require an operator session.
func (h *EditorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/editor/{entity}", auth.RequireSession(h.Get))
	mux.HandleFunc("POST /api/admin/editor/{entity}/select", auth.RequireSession(h.Select))
	mux.HandleFunc("POST /api/admin/editor/{entity}/clear", auth.RequireSession(h.Clear))
	mux.HandleFunc("POST /api/admin/editor/{entity}/form", auth.RequireSession(h.Mutate))
	mux.HandleFunc("POST /api/admin/editor/{entity}/submit", auth.RequireSession(h.Submit))
	mux.HandleFunc("POST /api/admin/editor/{entity}/delete", auth.RequireSession(h.Delete))
}

// editorView is the full editor snapshot returned by every editor endpoint so
// the UI can re-render from any response.
type editorView struct {
	State     editor.State       `json:"state"`
	Form      editor.FormState   `json:"form"`
	Documents []*models.Document `json:"documents"`
}

func (h *EditorHandler) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	entity := r.PathValue("entity")
	session, err := h.manager.Session(auth.OperatorID(r), entity)
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, "unknown_entity", err.Error())
		return nil, false
	}
	return session, true
}

func (h *EditorHandler) writeView(w http.ResponseWriter, session *editor.Session) {
	view := editorView{
		State:     session.State(),
		Form:      session.Form(),
		Documents: session.Documents(),
	}
	if view.Documents == nil {
		view.Documents = []*models.Document{}
	}
	if err := WriteJSON(w, http.StatusOK, view); err != nil {
		h.logger.Error("Failed to encode editor view", zap.Error(err))
	}
}

// Get handles GET /api/admin/editor/{entity} requests.
// Refreshes the record list and returns the current editor snapshot.
func (h *EditorHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := session.List(r.Context()); err != nil {
		h.logger.Error("Failed to list documents",
			zap.String("entity", r.PathValue("entity")),
			zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	h.writeView(w, session)
}

type selectRequest struct {
	ID uuid.UUID `json:"id"`
}

// Select handles POST /api/admin/editor/{entity}/select requests.
// Binds the form to an existing record; selecting the same record twice
// yields the identical form.
func (h *EditorHandler) Select(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == uuid.Nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A record id is required")
		return
	}

	if err := session.Select(r.Context(), req.ID); err != nil {
		_ = ServiceError(w, err)
		return
	}
	h.writeView(w, session)
}

// Clear handles POST /api/admin/editor/{entity}/clear requests.
// Unbinds and empties the form, entering Creating-New.
func (h *EditorHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Clear()
	h.writeView(w, session)
}

// mutateRequest is one in-memory form edit. Op selects which reducer runs.
type mutateRequest struct {
	Op     string   `json:"op"` // set_scalar, set_list, add_entry, remove_entry, update_entry
	Field  string   `json:"field"`
	Value  string   `json:"value"`
	Values []string `json:"values"`
	Index  int      `json:"index"`
}

// Mutate handles POST /api/admin/editor/{entity}/form requests.
// Applies a single form edit in memory; nothing is persisted until submit.
func (h *EditorHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req mutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Field == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A field name is required")
		return
	}

	var apply func(editor.FormState) editor.FormState
	switch req.Op {
	case "set_scalar":
		apply = func(f editor.FormState) editor.FormState { return f.WithScalar(req.Field, req.Value) }
	case "set_list":
		apply = func(f editor.FormState) editor.FormState { return f.WithList(req.Field, req.Values) }
	case "add_entry":
		apply = func(f editor.FormState) editor.FormState { return f.WithEntryAdded(req.Field) }
	case "remove_entry":
		apply = func(f editor.FormState) editor.FormState { return f.WithEntryRemoved(req.Field, req.Index) }
	case "update_entry":
		apply = func(f editor.FormState) editor.FormState {
			return f.WithEntryUpdated(req.Field, req.Index, req.Value)
		}
	default:
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("Unknown form operation: %s", req.Op))
		return
	}

	session.Update(apply)
	h.writeView(w, session)
}

// Submit handles POST /api/admin/editor/{entity}/submit requests.
// Persists the form as an update when bound, a create otherwise. Validation
// failures return 400 and leave the form intact; store failures keep their
// own statuses.
func (h *EditorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := session.Submit(r.Context())
	if err != nil {
		_ = ServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{
		"id":    id,
		"state": session.State(),
		"form":  session.Form(),
	}); err != nil {
		h.logger.Error("Failed to encode submit response", zap.Error(err))
	}
}

type deleteRequest struct {
	ID      uuid.UUID `json:"id"`
	Confirm bool      `json:"confirm"`
}

// Delete handles POST /api/admin/editor/{entity}/delete requests.
// Requires confirm=true; deleting the record bound to the form clears it.
func (h *EditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == uuid.Nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A record id is required")
		return
	}

	if err := session.Remove(r.Context(), req.ID, req.Confirm); err != nil {
		_ = ServiceError(w, err)
		return
	}
	h.writeView(w, session)
}
