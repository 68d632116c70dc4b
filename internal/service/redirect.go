package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// RedirectManager maintains the bounded set of retired slugs per
// document. Eviction is oldest-first; the selection rule lives in
// exactly one place (the repository's ListByDocument ordering plus
// selectEviction below) so the preview and the commit can never
// disagree.
type RedirectManager struct {
	redirects    repositories.SlugRedirectRepository
	maxRedirects int
	logger       *slog.Logger
}

// NewRedirectManager creates a new redirect manager
func NewRedirectManager(redirects repositories.SlugRedirectRepository, logger *slog.Logger) *RedirectManager {
	return &RedirectManager{
		redirects:    redirects,
		maxRedirects: config.MaxRedirectsPerDocument,
		logger:       logger,
	}
}

// EvictionPreview is the read-only prediction of what AddRedirect would
// evict for a document right now.
type EvictionPreview struct {
	WouldDelete *string `json:"would_delete,omitempty"`
	Count       int     `json:"count"`
}

// AddRedirect records oldSlug as a retired slug for the document,
// evicting the oldest redirect when the bound is reached. Returns the
// evicted slug, or nil when nothing was evicted.
//
// Called with the same document state PreviewEviction saw (no
// intervening redirect mutation), the evicted slug is exactly the
// predicted one: both read the same ordering and pick the same row.
func (m *RedirectManager) AddRedirect(ctx context.Context, documentID, oldSlug string) (*string, error) {
	existing, err := m.redirects.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var deletedSlug *string
	if victim := selectEviction(existing, m.maxRedirects); victim != nil {
		if err := m.redirects.Delete(ctx, victim.ID); err != nil {
			return nil, err
		}
		deletedSlug = &victim.OldSlug
		m.logger.Debug("redirect evicted",
			"document_id", documentID,
			"old_slug", victim.OldSlug,
		)
	}

	redirect := &models.SlugRedirect{
		OldSlug:    oldSlug,
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}
	if err := m.redirects.Create(ctx, redirect); err != nil {
		return nil, err
	}

	return deletedSlug, nil
}

// Resolve maps a retired slug to its document ID, or ErrNotFound.
func (m *RedirectManager) Resolve(ctx context.Context, oldSlug string) (string, error) {
	redirect, err := m.redirects.GetByOldSlug(ctx, oldSlug)
	if err != nil {
		return "", err
	}
	return redirect.DocumentID, nil
}

// PreviewEviction predicts what the next AddRedirect for the document
// would evict, using the identical selection rule.
func (m *RedirectManager) PreviewEviction(ctx context.Context, documentID string) (*EvictionPreview, error) {
	existing, err := m.redirects.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	preview := &EvictionPreview{Count: len(existing)}
	if victim := selectEviction(existing, m.maxRedirects); victim != nil {
		preview.WouldDelete = &victim.OldSlug
	}
	return preview, nil
}

// DeleteAllForDocument cascades redirect cleanup on document removal.
func (m *RedirectManager) DeleteAllForDocument(ctx context.Context, documentID string) (int, error) {
	return m.redirects.DeleteAllForDocument(ctx, documentID)
}

// DeleteBySlug removes the redirect for one retired slug if it exists.
// Used when a rename re-takes a slug that currently redirects.
func (m *RedirectManager) DeleteBySlug(ctx context.Context, oldSlug string) error {
	redirect, err := m.redirects.GetByOldSlug(ctx, oldSlug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil // nothing to clean up
	}
	if err != nil {
		return err
	}
	return m.redirects.Delete(ctx, redirect.ID)
}

// selectEviction picks the redirect an insert would evict: the first
// entry of the oldest-first list, and only when the list is at (or
// past) the bound. redirects must already be ordered CreatedAt
// ascending, ID ascending on ties.
func selectEviction(redirects []models.SlugRedirect, maxRedirects int) *models.SlugRedirect {
	if len(redirects) < maxRedirects {
		return nil
	}
	return &redirects[0]
}
