package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// SlugRedirectRepository is an in-memory implementation of the
// SlugRedirectRepository interface
type SlugRedirectRepository struct {
	mu        sync.RWMutex
	redirects map[int64]*models.SlugRedirect
	nextID    int64
}

// NewSlugRedirectRepository creates a new in-memory redirect repository
func NewSlugRedirectRepository() *SlugRedirectRepository {
	return &SlugRedirectRepository{
		redirects: make(map[int64]*models.SlugRedirect),
		nextID:    1,
	}
}

func (r *SlugRedirectRepository) Create(ctx context.Context, redirect *models.SlugRedirect) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.redirects {
		if existing.OldSlug == redirect.OldSlug {
			return fmt.Errorf("redirect for slug '%s' already exists: %w", redirect.OldSlug, domain.ErrValidation)
		}
	}

	redirect.ID = r.nextID
	r.nextID++

	copied := *redirect
	r.redirects[redirect.ID] = &copied
	return nil
}

func (r *SlugRedirectRepository) GetByOldSlug(ctx context.Context, oldSlug string) (*models.SlugRedirect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, redirect := range r.redirects {
		if redirect.OldSlug == oldSlug {
			copied := *redirect
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("redirect %s: %w", oldSlug, domain.ErrNotFound)
}

// ListByDocument returns redirects oldest first: CreatedAt ascending,
// ID ascending on ties. Same comparator as the postgres ORDER BY.
func (r *SlugRedirectRepository) ListByDocument(ctx context.Context, documentID string) ([]models.SlugRedirect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	redirects := []models.SlugRedirect{}
	for _, redirect := range r.redirects {
		if redirect.DocumentID == documentID {
			redirects = append(redirects, *redirect)
		}
	}

	sort.Slice(redirects, func(i, j int) bool {
		if redirects[i].CreatedAt.Equal(redirects[j].CreatedAt) {
			return redirects[i].ID < redirects[j].ID
		}
		return redirects[i].CreatedAt.Before(redirects[j].CreatedAt)
	})

	return redirects, nil
}

func (r *SlugRedirectRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.redirects[id]; !exists {
		return fmt.Errorf("redirect %d: %w", id, domain.ErrNotFound)
	}

	delete(r.redirects, id)
	return nil
}

func (r *SlugRedirectRepository) DeleteAllForDocument(ctx context.Context, documentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, redirect := range r.redirects {
		if redirect.DocumentID == documentID {
			delete(r.redirects, id)
			deleted++
		}
	}

	return deleted, nil
}
