package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// SlugRedirectRepository persists retired slugs. Implementations must
// honor the transaction in the context so redirect maintenance commits
// with the rename that caused it.
type SlugRedirectRepository interface {
	// Create inserts a redirect row and fills in its generated ID.
	Create(ctx context.Context, redirect *models.SlugRedirect) error

	// GetByOldSlug resolves a retired slug, or ErrNotFound.
	GetByOldSlug(ctx context.Context, oldSlug string) (*models.SlugRedirect, error)

	// ListByDocument returns a document's redirects ordered oldest first
	// (CreatedAt ascending, ID ascending on ties). Eviction selection and
	// its preview both rely on this ordering; it is the single place the
	// comparator lives.
	ListByDocument(ctx context.Context, documentID string) ([]models.SlugRedirect, error)

	// Delete removes a single redirect row by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteAllForDocument removes every redirect owned by a document,
	// returning how many rows were deleted.
	DeleteAllForDocument(ctx context.Context, documentID string) (int, error)
}
