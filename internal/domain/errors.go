package domain

import (
	"errors"
	"net/http"
	"time"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling without
// the handler layer enumerating every concrete error type.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors for the document lifecycle - use with errors.Is().
// Every core operation fails fast with exactly one of these; nothing is
// swallowed or downgraded below the handler layer.
var (
	// ErrNotFound: the id or slug does not resolve to a live document.
	ErrNotFound = errors.New("document not found")

	// ErrOwnership: the actor is not the document's author.
	ErrOwnership = errors.New("not the document author")

	// ErrAlreadyPublished: submit/publish attempted on a published document.
	ErrAlreadyPublished = errors.New("document already published")

	// ErrPendingReview: edit attempted while the document is under review.
	ErrPendingReview = errors.New("document is pending review")

	// ErrPublished: edit attempted on a published document.
	ErrPublished = errors.New("document is published")

	// ErrValidation: missing title, malformed request, or missing curation
	// data for the curated type.
	ErrValidation = errors.New("validation failed")

	// ErrRateLimit: too many review submissions inside the rolling window.
	ErrRateLimit = errors.New("submission rate limit exceeded")

	// ErrInvalidStatus: admin action attempted on the wrong status.
	ErrInvalidStatus = errors.New("invalid status for this action")

	// ErrInvalidTitle: title is empty or equals "untitled".
	ErrInvalidTitle = errors.New("title is empty or untitled")

	// ErrEmptyDocument: no valid title, no extractable heading, no content.
	ErrEmptyDocument = errors.New("document has no title or content")

	// ErrSlugDeletionRequired: a rename would evict a redirect and the
	// caller has not confirmed the deletion.
	ErrSlugDeletionRequired = errors.New("rename would delete a redirect")

	// ErrUnauthorized: request carries no verifiable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: authenticated but not allowed (admin surface).
	ErrForbidden = errors.New("forbidden")
)

// RateLimitError carries the moment the oldest qualifying submission ages
// out of the window, so clients can surface an accurate retry hint.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return ErrRateLimit.Error() }

func (e *RateLimitError) StatusCode() int { return http.StatusTooManyRequests }

// Is allows errors.Is() to match against ErrRateLimit
func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimit }

// SlugDeletionRequiredError carries the redirect slug that committing the
// rename would evict. A confirmation UI shows exactly this slug before the
// caller retries with confirmation; the preview/commit contract guarantees
// the committed eviction matches.
type SlugDeletionRequiredError struct {
	Slug string
}

func (e *SlugDeletionRequiredError) Error() string { return ErrSlugDeletionRequired.Error() }

func (e *SlugDeletionRequiredError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrSlugDeletionRequired
func (e *SlugDeletionRequiredError) Is(target error) bool { return target == ErrSlugDeletionRequired }
