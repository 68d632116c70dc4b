package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// DocumentPage is a paginated document listing with its total.
type DocumentPage struct {
	Documents []models.Document `json:"documents"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// DocumentRepository persists documents. Implementations must honor the
// transaction in the context (see SetTx) so callers can compose document
// writes with counter and redirect writes atomically.
type DocumentRepository interface {
	// Create inserts a new document and fills in its generated ID.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a live document by ID.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetBySlug retrieves a live document by its current slug.
	GetBySlug(ctx context.Context, slug string) (*models.Document, error)

	// SlugExists reports whether any live document other than excludeID
	// already owns the slug.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)

	// Update writes all mutable fields of the document.
	Update(ctx context.Context, doc *models.Document) error

	// Delete hard-deletes a document. Redirect cascade and counter
	// maintenance are the caller's responsibility, inside the same
	// transaction.
	Delete(ctx context.Context, id string) error

	// ListByAuthor lists an author's documents, newest first.
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*DocumentPage, error)

	// ListByStatus lists documents in a status. Pending listings order by
	// SubmittedAt ascending so reviewers see the oldest submission first.
	ListByStatus(ctx context.Context, status models.DocumentStatus, limit, offset int) (*DocumentPage, error)

	// CountByStatus counts live documents in a status using the status
	// index. Bootstrap/repair path only; steady-state reads use the
	// stats aggregate.
	CountByStatus(ctx context.Context, status models.DocumentStatus) (int, error)
}
