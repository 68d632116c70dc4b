package handler

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/internal/domain"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// getActor resolves the request identity set by the auth middleware.
func getActor(r *http.Request) service.Actor {
	return service.Actor{
		ID:    httputil.GetUserID(r),
		Admin: httputil.IsAdmin(r),
	}
}

// requireActor is getActor plus the guard for routes that make no sense
// anonymously.
func requireActor(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	actor := getActor(r)
	if actor.ID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return service.Actor{}, false
	}
	return actor, true
}

// handleError converts domain errors to HTTP responses. Typed errors
// carry machine-readable extension fields so clients can branch without
// parsing the detail string.
func handleError(w http.ResponseWriter, err error) {
	var slugErr *domain.SlugDeletionRequiredError
	var rateErr *domain.RateLimitError

	switch {
	case errors.As(err, &slugErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, slugErr.Error(), map[string]interface{}{
			"code":               "slug_deletion_required",
			"slug_to_be_deleted": slugErr.Slug,
		})
	case errors.As(err, &rateErr):
		w.Header().Set("Retry-After", strconv.FormatInt(int64(rateErr.RetryAfter.Seconds())+1, 10))
		httputil.RespondErrorWithExtras(w, http.StatusTooManyRequests, rateErr.Error(), map[string]interface{}{
			"code":           "rate_limited",
			"retry_after_ms": rateErr.RetryAfter.Milliseconds(),
		})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrEmptyDocument):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrOwnership),
		errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAlreadyPublished),
		errors.Is(err, domain.ErrPendingReview),
		errors.Is(err, domain.ErrPublished),
		errors.Is(err, domain.ErrInvalidStatus):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parsePagination reads limit/offset query parameters with defaults.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}
