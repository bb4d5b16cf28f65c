package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/auth"
	"github.com/mycoscan/mycoscan-admin/pkg/media"
)

// maxUploadMemory caps how much of a multipart upload is buffered in memory
// before spilling to disk.
const maxUploadMemory = 32 << 20 // 32 MiB

// UploadsHandler accepts image uploads from the editor screens and returns
// the hosted URLs for the form's image list.
type UploadsHandler struct {
	uploader media.Uploader
	logger   *zap.Logger
}

// NewUploadsHandler creates a new UploadsHandler.
func NewUploadsHandler(uploader media.Uploader, logger *zap.Logger) *UploadsHandler {
	return &UploadsHandler{uploader: uploader, logger: logger}
}

// RegisterRoutes registers the uploads handler's routes on the given mux.
func (h *UploadsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/uploads", auth.RequireSession(h.Upload))
}

// Upload handles POST /api/admin/uploads requests.
// Expects a multipart form with one or more parts named "files". The whole
// batch succeeds or fails together; a partial URL list is never returned.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "At least one file is required")
		return
	}

	files := make([]media.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Unreadable file part")
			return
		}
		defer func() { _ = f.Close() }()
		files = append(files, media.File{Name: header.Filename, Content: f})
	}

	urls, err := h.uploader.UploadAll(r.Context(), files)
	if err != nil {
		h.logger.Error("Failed to upload files",
			zap.Int("count", len(files)),
			zap.Error(err))
		_ = ServiceError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]any{"urls": urls})
}
