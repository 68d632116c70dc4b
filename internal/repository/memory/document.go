// Package memory provides in-memory repository implementations used by
// service-level tests. They honor the same interface contracts as the
// postgres implementations but hold everything in mutex-guarded maps.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// DocumentRepository is an in-memory implementation of the
// DocumentRepository interface
type DocumentRepository struct {
	mu        sync.RWMutex
	documents map[string]*models.Document
}

// NewDocumentRepository creates a new in-memory document repository
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		documents: make(map[string]*models.Document),
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.documents {
		if existing.Slug == doc.Slug {
			return fmt.Errorf("slug '%s' is already taken: %w", doc.Slug, domain.ErrValidation)
		}
	}

	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	copied := *doc
	return &copied, nil
}

func (r *DocumentRepository) GetBySlug(ctx context.Context, slug string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.documents {
		if doc.Slug == slug {
			copied := *doc
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
}

func (r *DocumentRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.documents {
		if doc.Slug == slug && doc.ID != excludeID {
			return true, nil
		}
	}

	return false, nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[doc.ID]; !exists {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[id]; !exists {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	delete(r.documents, id)
	return nil
}

func (r *DocumentRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) (*repositories.DocumentPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Document
	for _, doc := range r.documents {
		if doc.AuthorID == authorID {
			matched = append(matched, *doc)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	return page(matched, limit, offset), nil
}

func (r *DocumentRepository) ListByStatus(ctx context.Context, status models.DocumentStatus, limit, offset int) (*repositories.DocumentPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Document
	for _, doc := range r.documents {
		if doc.Status == status {
			matched = append(matched, *doc)
		}
	}
	if status == models.StatusPending {
		sort.Slice(matched, func(i, j int) bool {
			ti, tj := matched[i].SubmittedAt, matched[j].SubmittedAt
			if ti == nil || tj == nil {
				return tj == nil && ti != nil
			}
			return ti.Before(*tj)
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		})
	}

	return page(matched, limit, offset), nil
}

func (r *DocumentRepository) CountByStatus(ctx context.Context, status models.DocumentStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, doc := range r.documents {
		if doc.Status == status {
			count++
		}
	}

	return count, nil
}

// page applies limit/offset to an already-sorted slice
func page(docs []models.Document, limit, offset int) *repositories.DocumentPage {
	total := len(docs)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	window := docs[offset:end]
	if window == nil {
		window = []models.Document{}
	}

	return &repositories.DocumentPage{
		Documents: window,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
}
