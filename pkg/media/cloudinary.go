// Package media uploads images to Cloudinary and hands back the hosted URLs.
// Only URLs are ever persisted; the binary never touches the document store.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mycoscan/mycoscan-admin/pkg/apperrors"
)

// File is one upload: a filename and its content.
type File struct {
	Name    string
	Content io.Reader
}

// Uploader is the media gateway contract consumed by the editor screens.
// UploadAll is all-or-nothing: one failed file fails the whole call, so a
// submit can never persist a partially uploaded image list.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
	UploadAll(ctx context.Context, files []File) ([]string, error)
}

// Config holds configuration for creating a Cloudinary client.
type Config struct {
	CloudName    string // Cloudinary cloud name
	UploadPreset string // Unsigned upload preset
	MaxFiles     int    // Cap per UploadAll call
	BaseURL      string // Override for tests; empty means the public API
}

// Client performs unsigned uploads against the Cloudinary image upload API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	uploadPreset string
	maxFiles     int
	logger       *zap.Logger
}

// NewClient creates a new Cloudinary upload client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.CloudName == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("cloud name is required")
	}
	if cfg.UploadPreset == "" {
		return nil, fmt.Errorf("upload preset is required")
	}
	if cfg.MaxFiles <= 0 {
		return nil, fmt.Errorf("max files must be positive")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudName)
	}

	return &Client{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		baseURL:      baseURL,
		uploadPreset: cfg.UploadPreset,
		maxFiles:     cfg.MaxFiles,
		logger:       logger.Named("media"),
	}, nil
}

var _ Uploader = (*Client)(nil)

// uploadResponse is the slice of Cloudinary's response we care about.
// A missing secure_url means the upload was rejected.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one file and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, file File) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return "", fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Upload request failed",
			zap.String("file", file.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: unreadable response: %v", apperrors.ErrUploadFailed, err)
	}

	if result.SecureURL == "" {
		c.logger.Error("Upload rejected",
			zap.String("file", file.Name),
			zap.Int("status", resp.StatusCode),
			zap.String("message", result.Error.Message))
		if result.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", apperrors.ErrUploadFailed, result.Error.Message)
		}
		return "", apperrors.ErrUploadFailed
	}

	c.logger.Info("Uploaded file",
		zap.String("file", file.Name),
		zap.Duration("elapsed", time.Since(start)))
	return result.SecureURL, nil
}

// UploadAll sends up to the configured cap of files and returns their URLs in
// input order. Any failure aborts the call; no partial URL list is returned.
func (c *Client) UploadAll(ctx context.Context, files []File) ([]string, error) {
	if len(files) > c.maxFiles {
		return nil, fmt.Errorf("%w: got %d, cap is %d", apperrors.ErrTooManyFiles, len(files), c.maxFiles)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := c.Upload(ctx, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
