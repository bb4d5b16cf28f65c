package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/services"
)

// PostsHandler serves the content moderation browser: filtered post listing,
// on-demand comment threads, and confirmation-gated deletion of either.
type PostsHandler struct {
	postService services.PostService
	logger      *zap.Logger
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(postService services.PostService, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{postService: postService, logger: logger}
}

// RegisterRoutes registers the posts handler's routes on the given mux.
func (h *PostsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/posts", auth.RequireSession(h.Search))
	mux.HandleFunc("GET /api/admin/posts/{id}/comments", auth.RequireSession(h.Comments))
	mux.HandleFunc("DELETE /api/admin/posts/{id}", auth.RequireSession(h.DeletePost))
	mux.HandleFunc("DELETE /api/admin/posts/{id}/comments/{commentID}", auth.RequireSession(h.DeleteComment))
}

// Search handles GET /api/admin/posts requests.
// The search query parameter filters posts by substring match over every
// field; an empty or absent term returns all posts.
func (h *PostsHandler) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to search posts", zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Comments handles GET /api/admin/posts/{id}/comments requests.
func (h *PostsHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid post id")
		return
	}

	comments, err := h.postService.Comments(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list comments",
			zap.String("post_id", id.String()),
			zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// DeletePost handles DELETE /api/admin/posts/{id} requests.
// Requires confirm=true; the post's comments are left in place.
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid post id")
		return
	}

	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.postService.DeletePost(r.Context(), id, confirm); err != nil {
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteComment handles DELETE /api/admin/posts/{id}/comments/{commentID}
// requests. Requires confirm=true; the parent post is untouched.
func (h *PostsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid post id")
		return
	}
	commentID, err := uuid.Parse(r.PathValue("commentID"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid comment id")
		return
	}

	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.postService.DeleteComment(r.Context(), postID, commentID, confirm); err != nil {
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
