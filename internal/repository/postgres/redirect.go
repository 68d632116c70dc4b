package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PostgresSlugRedirectRepository implements the SlugRedirectRepository interface
type PostgresSlugRedirectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSlugRedirectRepository creates a new slug redirect repository
func NewSlugRedirectRepository(config *RepositoryConfig) repositories.SlugRedirectRepository {
	return &PostgresSlugRedirectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a redirect row
func (r *PostgresSlugRedirectRepository) Create(ctx context.Context, redirect *models.SlugRedirect) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (old_slug, document_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.tables.SlugRedirects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		redirect.OldSlug,
		redirect.DocumentID,
		redirect.CreatedAt,
	).Scan(&redirect.ID)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("redirect for slug '%s' already exists: %w", redirect.OldSlug, domain.ErrValidation)
		}
		return fmt.Errorf("create slug redirect: %w", err)
	}

	return nil
}

// GetByOldSlug resolves a retired slug
func (r *PostgresSlugRedirectRepository) GetByOldSlug(ctx context.Context, oldSlug string) (*models.SlugRedirect, error) {
	query := fmt.Sprintf(`
		SELECT id, old_slug, document_id, created_at
		FROM %s
		WHERE old_slug = $1
	`, r.tables.SlugRedirects)

	var redirect models.SlugRedirect
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, oldSlug).Scan(
		&redirect.ID,
		&redirect.OldSlug,
		&redirect.DocumentID,
		&redirect.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("redirect %s: %w", oldSlug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get slug redirect: %w", err)
	}

	return &redirect, nil
}

// ListByDocument returns a document's redirects oldest first.
// The ORDER BY here is the eviction comparator: created_at ascending,
// id ascending on ties. Eviction and its preview both read this order.
func (r *PostgresSlugRedirectRepository) ListByDocument(ctx context.Context, documentID string) ([]models.SlugRedirect, error) {
	query := fmt.Sprintf(`
		SELECT id, old_slug, document_id, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC
	`, r.tables.SlugRedirects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list slug redirects: %w", err)
	}
	defer rows.Close()

	var redirects []models.SlugRedirect
	for rows.Next() {
		var redirect models.SlugRedirect
		err := rows.Scan(
			&redirect.ID,
			&redirect.OldSlug,
			&redirect.DocumentID,
			&redirect.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slug redirect: %w", err)
		}
		redirects = append(redirects, redirect)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slug redirects: %w", err)
	}

	// Return empty slice instead of nil
	if redirects == nil {
		redirects = []models.SlugRedirect{}
	}

	return redirects, nil
}

// Delete removes a single redirect row by ID
func (r *PostgresSlugRedirectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.SlugRedirects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slug redirect: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("redirect %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllForDocument removes every redirect owned by a document
func (r *PostgresSlugRedirectRepository) DeleteAllForDocument(ctx context.Context, documentID string) (int, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE document_id = $1
	`, r.tables.SlugRedirects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, documentID)
	if err != nil {
		return 0, fmt.Errorf("delete slug redirects for document: %w", err)
	}

	return int(result.RowsAffected()), nil
}
