package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// docColumns is the full column list scanned into a models.Document.
// "refs" backs the References field; "references" is reserved in SQL.
const docColumns = `id, author_id, title, slug, content, type, status,
	cover_image_id, curation, refs, submission_history,
	created_at, updated_at, published_at, submitted_at, rejection_reason`

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, author_id, title, slug, content, type, status,
			cover_image_id, curation, refs, submission_history,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.AuthorID,
		doc.Title,
		doc.Slug,
		doc.Content,
		doc.Type,
		doc.Status,
		doc.CoverImageID,
		doc.Curation,
		doc.References,
		doc.SubmissionHistory,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("slug '%s' is already taken: %w", doc.Slug, domain.ErrValidation)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a live document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, docColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// GetBySlug retrieves a live document by its current slug
func (r *PostgresDocumentRepository) GetBySlug(ctx context.Context, slug string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE slug = $1
	`, docColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, slug))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document by slug: %w", err)
	}

	return doc, nil
}

// SlugExists reports whether another live document already owns the slug
func (r *PostgresDocumentRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE slug = $1 AND id <> $2
		)
	`, r.tables.Documents)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}

	return exists, nil
}

// Update writes all mutable fields of the document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, content = $3, type = $4, status = $5,
			cover_image_id = $6, curation = $7, refs = $8,
			submission_history = $9, updated_at = $10, published_at = $11,
			submitted_at = $12, rejection_reason = $13
		WHERE id = $14
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Slug,
		doc.Content,
		doc.Type,
		doc.Status,
		doc.CoverImageID,
		doc.Curation,
		doc.References,
		doc.SubmissionHistory,
		doc.UpdatedAt,
		doc.PublishedAt,
		doc.SubmittedAt,
		doc.RejectionReason,
		doc.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("slug '%s' is already taken: %w", doc.Slug, domain.ErrValidation)
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByAuthor lists an author's documents, newest first
func (r *PostgresDocumentRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*repositories.DocumentPage, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE author_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, docColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents by author: %w", err)
	}
	documents, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE author_id = $1`, r.tables.Documents)
	var total int
	if err := executor.QueryRow(ctx, countQuery, authorID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents by author: %w", err)
	}

	return &repositories.DocumentPage{
		Documents: documents,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// ListByStatus lists documents in a status. Pending documents order by
// submission time ascending so the review queue is oldest-first.
func (r *PostgresDocumentRepository) ListByStatus(ctx context.Context, status models.DocumentStatus, limit, offset int) (*repositories.DocumentPage, error) {
	order := "updated_at DESC"
	if status == models.StatusPending {
		order = "submitted_at ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE status = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, docColumns, r.tables.Documents, order)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents by status: %w", err)
	}
	documents, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}

	total, err := r.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return &repositories.DocumentPage{
		Documents: documents,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// CountByStatus counts live documents in a status via the status index
func (r *PostgresDocumentRepository) CountByStatus(ctx context.Context, status models.DocumentStatus) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = $1`, r.tables.Documents)

	var total int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("count documents by status: %w", err)
	}

	return total, nil
}

// scanDocument scans one full document row
func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.AuthorID,
		&doc.Title,
		&doc.Slug,
		&doc.Content,
		&doc.Type,
		&doc.Status,
		&doc.CoverImageID,
		&doc.Curation,
		&doc.References,
		&doc.SubmissionHistory,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.PublishedAt,
		&doc.SubmittedAt,
		&doc.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// collectDocuments drains rows into a slice, closing the rows
func collectDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}
