package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// DocumentHandler handles the author-facing document HTTP surface.
type DocumentHandler struct {
	docService *service.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService *service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// HealthCheck responds to liveness probes
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDocument creates a new draft
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req service.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AuthorID = actor.ID

	result, err := h.docService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// ListDocuments pages through the caller's own documents
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	page, err := h.docService.List(r.Context(), actor, limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetDocument retrieves a document for editing
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.GetForEdit(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// GetPublished resolves a slug to a readable document, following
// redirects. Anonymous callers see published documents only.
// GET /api/published/{slug}
func (h *DocumentHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	result, err := h.docService.GetBySlug(r.Context(), getActor(r), r.PathValue("slug"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// UpdateTitle renames a draft
// PATCH /api/documents/{id}/title
func (h *DocumentHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Title               string `json:"title"`
		ConfirmSlugDeletion bool   `json:"confirm_slug_deletion"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.docService.UpdateTitle(r.Context(), actor, r.PathValue("id"), req.Title, req.ConfirmSlugDeletion)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// UpdateType changes a draft's document type
// PATCH /api/documents/{id}/type
func (h *DocumentHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.docService.UpdateType(r.Context(), actor, r.PathValue("id"), req.Type); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateContent replaces a draft's content
// PUT /api/documents/{id}/content
func (h *DocumentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Content json.RawMessage `json:"content"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.docService.UpdateContent(r.Context(), actor, r.PathValue("id"), req.Content); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateCoverImage sets or clears the draft's cover image reference
// PATCH /api/documents/{id}/cover-image
func (h *DocumentHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	// Tri-state body: absent field means bad request, null clears the
	// cover, a string sets it.
	var req struct {
		CoverImageID httputil.OptionalString `json:"cover_image_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.CoverImageID.Present {
		httputil.RespondError(w, http.StatusBadRequest, "cover_image_id is required (null to clear)")
		return
	}

	if err := h.docService.UpdateCoverImage(r.Context(), actor, r.PathValue("id"), req.CoverImageID.Value); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateMetadata applies optional metadata fields in one call
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req service.UpdateMetadataRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.docService.UpdateMetadata(r.Context(), actor, r.PathValue("id"), &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitDocument queues a draft for review
// POST /api/documents/{id}/submit
func (h *DocumentHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Submit(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PublishDocument publishes a draft directly
// POST /api/documents/{id}/publish
func (h *DocumentHandler) PublishDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Publish(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument removes a document and its redirects
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Remove(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
