package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/httputil"
	"inkwell/internal/storage"
)

// allowedCoverTypes lists the image content types a cover upload may
// declare.
var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadHandler hands out presigned URLs for cover images. The image
// bytes never pass through this server; the document row only ever
// stores the opaque image ID.
type UploadHandler struct {
	backend storage.Backend
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(backend storage.Backend, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		backend: backend,
		logger:  logger,
	}
}

// RequestUpload allocates an image ID and presigns its upload URL
// POST /api/uploads/covers
func (h *UploadHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}

	var req struct {
		ContentType string `json:"content_type"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !allowedCoverTypes[contentType] {
		httputil.RespondError(w, http.StatusBadRequest, "unsupported image content type")
		return
	}

	imageID := uuid.New().String()
	uploadURL, err := h.backend.GenerateUploadURL(r.Context(), imageID, contentType)
	if err != nil {
		h.logger.Error("failed to presign cover upload", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to create upload URL")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"image_id":   imageID,
		"upload_url": uploadURL,
	})
}

// GetCoverURL resolves an image ID to a readable URL
// GET /api/covers/{id}
func (h *UploadHandler) GetCoverURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.backend.GetURL(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to presign cover read", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to resolve image URL")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}
