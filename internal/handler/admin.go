package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// AdminHandler handles the review and stats surface. The service layer
// enforces the admin role; these handlers only shape requests and
// responses.
type AdminHandler struct {
	docService *service.DocumentService
	statsSvc   *service.StatsService
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(docService *service.DocumentService, statsSvc *service.StatsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		docService: docService,
		statsSvc:   statsSvc,
		logger:     logger,
	}
}

// ListPending pages through the review queue, oldest first
// GET /api/admin/review
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)
	page, err := h.docService.ListPendingForAdmin(r.Context(), actor, limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetForReview retrieves one pending document, anonymized
// GET /api/admin/review/{id}
func (h *AdminHandler) GetForReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.GetForAdminReview(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Approve publishes a pending document
// POST /api/admin/review/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Approve(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reject returns a pending document to its author with a reason
// POST /api/admin/review/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.docService.Reject(r.Context(), actor, r.PathValue("id"), req.Reason); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats returns the dashboard counters
// GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	stats, err := h.docService.GetAdminStats(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}

// RecountStats rebuilds the aggregate from the status index. Repair
// endpoint; not part of the normal read path.
// POST /api/admin/stats/recount
func (h *AdminHandler) RecountStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.Admin {
		httputil.RespondError(w, http.StatusForbidden, "admin only")
		return
	}

	aggregate, err := h.statsSvc.Recount(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, aggregate)
}
