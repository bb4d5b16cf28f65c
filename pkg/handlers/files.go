package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"
)

// FilesHandler proxies hosted application PDFs so the browser downloads them
// with a sensible filename instead of opening the raw storage URL.
type FilesHandler struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(logger *zap.Logger) *FilesHandler {
	return &FilesHandler{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// RegisterRoutes registers the files handler's routes on the given mux.
func (h *FilesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/files/download", h.Download)
}

// Download handles GET /api/files/download requests.
// Fetches the url query parameter and streams it back as a PDF attachment
// named after the URL's last path segment. Upstream failures are a 502.
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A url query parameter is required")
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid file URL")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid file URL")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("Failed to fetch file", zap.String("url", rawURL), zap.Error(err))
		_ = ErrorResponse(w, http.StatusBadGateway, "fetch_failed", "Failed to fetch file")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		h.logger.Error("Upstream returned non-OK status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		_ = ErrorResponse(w, http.StatusBadGateway, "fetch_failed", "Failed to fetch file")
		return
	}

	filename := path.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "document.pdf"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		h.logger.Warn("Interrupted file stream", zap.String("url", rawURL), zap.Error(err))
	}
}
