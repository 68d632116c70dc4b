package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/doctypes"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// Actor is the resolved identity a request acts as.
type Actor struct {
	ID    string
	Admin bool
}

// DocumentService orchestrates the document lifecycle. Every write
// re-fetches the document inside the transaction before applying
// anything, so an authorization or status check can never act on state
// another request changed in between.
type DocumentService struct {
	docs      repositories.DocumentRepository
	stats     repositories.StatsRepository
	redirects *RedirectManager
	txManager repositories.TransactionManager
	engine    *TransitionEngine
	limiter   *SubmissionLimiter
	analyzer  *ContentAnalyzer
	types     *doctypes.Registry
	statsSvc  *StatsService
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docs repositories.DocumentRepository,
	stats repositories.StatsRepository,
	redirects *RedirectManager,
	txManager repositories.TransactionManager,
	engine *TransitionEngine,
	limiter *SubmissionLimiter,
	analyzer *ContentAnalyzer,
	types *doctypes.Registry,
	statsSvc *StatsService,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		docs:      docs,
		stats:     stats,
		redirects: redirects,
		txManager: txManager,
		engine:    engine,
		limiter:   limiter,
		analyzer:  analyzer,
		types:     types,
		statsSvc:  statsSvc,
		logger:    logger,
	}
}

// CreateDocumentRequest carries the fields for a new draft.
type CreateDocumentRequest struct {
	AuthorID string          `json:"-"`
	Title    string          `json:"title"`
	Type     string          `json:"type"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// CreateDocumentResult identifies the created draft.
type CreateDocumentResult struct {
	DocumentID string `json:"document_id"`
	Slug       string `json:"slug"`
}

// UpdateTitleResult reports the slug a rename landed on and, when the
// rename evicted a redirect, which retired slug stopped resolving.
type UpdateTitleResult struct {
	Slug        string  `json:"slug"`
	SlugDeleted *string `json:"slug_deleted,omitempty"`
}

// UpdateMetadataRequest bundles the optional draft metadata fields.
// Nil fields are left unchanged.
type UpdateMetadataRequest struct {
	Title               *string          `json:"title,omitempty"`
	CoverImageID        *string          `json:"cover_image_id,omitempty"`
	Curation            *models.Curation `json:"curation,omitempty"`
	References          []string         `json:"references,omitempty"`
	ConfirmSlugDeletion bool             `json:"confirm_slug_deletion,omitempty"`
}

// GetBySlugResult resolves a slug lookup. Redirected is set when the
// slug is retired and CanonicalSlug should be used instead.
type GetBySlugResult struct {
	Document      *models.Document `json:"document"`
	CanonicalSlug string           `json:"canonical_slug"`
	Redirected    bool             `json:"redirected"`
}

// Create creates a new draft in the building state. Titles that are
// empty or "untitled" are tolerated here; the slug falls into the
// untitled-{shortID} namespace and validity is enforced at submit or
// publish time.
func (s *DocumentService) Create(ctx context.Context, req *CreateDocumentRequest) (*CreateDocumentResult, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id := uuid.New().String()
	title := strings.TrimSpace(req.Title)
	now := time.Now()

	slugTitle := title
	if !IsValidTitle(title) {
		slugTitle = ""
	}

	var result *CreateDocumentResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		slug, err := GenerateUniqueSlug(slugTitle, id, func(candidate string) (bool, error) {
			return s.docs.SlugExists(txCtx, candidate, id)
		})
		if err != nil {
			return err
		}

		doc := &models.Document{
			ID:        id,
			AuthorID:  req.AuthorID,
			Title:     title,
			Slug:      slug,
			Content:   req.Content,
			Type:      models.DocumentType(req.Type),
			Status:    models.StatusBuilding,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.docs.Create(txCtx, doc); err != nil {
			return err
		}
		if err := s.stats.Increment(txCtx, models.StatusBuilding); err != nil {
			return err
		}

		result = &CreateDocumentResult{DocumentID: id, Slug: slug}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", result.DocumentID,
		"slug", result.Slug,
		"type", req.Type,
	)

	return result, nil
}

// UpdateTitle renames a building draft. A rename that changes the slug
// retires the old slug as a redirect; when the redirect bound is
// reached the caller must confirm the eviction (the error carries the
// exact slug that would stop resolving).
func (s *DocumentService) UpdateTitle(ctx context.Context, actor Actor, documentID, title string, confirmSlugDeletion bool) (*UpdateTitleResult, error) {
	title = strings.TrimSpace(title)
	if !IsValidTitle(title) {
		return nil, fmt.Errorf("title %q: %w", title, domain.ErrInvalidTitle)
	}
	if len(title) > config.MaxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, config.MaxTitleLength)
	}

	var result *UpdateTitleResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionEdit, time.Now()); err != nil {
			return err
		}

		result, err = s.applyTitle(txCtx, doc, title, confirmSlugDeletion)
		if err != nil {
			return err
		}

		doc.UpdatedAt = time.Now()
		return s.docs.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document renamed",
		"id", documentID,
		"slug", result.Slug,
		"slug_deleted", result.SlugDeleted != nil,
	)

	return result, nil
}

// UpdateType changes a building draft's type. Curation requirements of
// the new type are enforced at submit/publish, not here.
func (s *DocumentService) UpdateType(ctx context.Context, actor Actor, documentID, docType string) error {
	if !s.types.IsValid(docType) {
		return fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, docType)
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionEdit, time.Now()); err != nil {
			return err
		}

		doc.Type = models.DocumentType(docType)
		doc.UpdatedAt = time.Now()
		return s.docs.Update(txCtx, doc)
	})
}

// UpdateContent replaces a building draft's content. When the draft has
// no valid title, the first heading in the new content becomes the
// title (regenerating the slug); a draft left with no title, no
// heading, and no text at all is rejected.
func (s *DocumentService) UpdateContent(ctx context.Context, actor Actor, documentID string, content json.RawMessage) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionEdit, time.Now()); err != nil {
			return err
		}

		doc.Content = content

		if !IsValidTitle(doc.Title) {
			heading := s.analyzer.ExtractHeading(content)
			switch {
			case IsValidTitle(heading):
				// Truncate on rune boundaries; headings can carry
				// multi-byte characters.
				if runes := []rune(heading); len(runes) > config.MaxTitleLength {
					heading = string(runes[:config.MaxTitleLength])
				}
				// Auto-titling skips eviction confirmation: the slug
				// being retired is an untitled placeholder.
				if _, err := s.applyTitle(txCtx, doc, heading, true); err != nil {
					return err
				}
			case !s.analyzer.HasText(content):
				return fmt.Errorf("document %s: %w", doc.ID, domain.ErrEmptyDocument)
			}
		}

		doc.UpdatedAt = time.Now()
		return s.docs.Update(txCtx, doc)
	})
}

// UpdateCoverImage sets or clears the opaque cover image reference.
func (s *DocumentService) UpdateCoverImage(ctx context.Context, actor Actor, documentID string, coverImageID *string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionEdit, time.Now()); err != nil {
			return err
		}

		doc.CoverImageID = coverImageID
		doc.UpdatedAt = time.Now()
		return s.docs.Update(txCtx, doc)
	})
}

// UpdateMetadata applies the optional metadata fields in one write.
func (s *DocumentService) UpdateMetadata(ctx context.Context, actor Actor, documentID string, req *UpdateMetadataRequest) error {
	if req.Curation != nil {
		if err := validateCuration(req.Curation); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if !IsValidTitle(trimmed) {
			return fmt.Errorf("title %q: %w", trimmed, domain.ErrInvalidTitle)
		}
		req.Title = &trimmed
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionEdit, time.Now()); err != nil {
			return err
		}

		if req.Title != nil {
			if _, err := s.applyTitle(txCtx, doc, *req.Title, req.ConfirmSlugDeletion); err != nil {
				return err
			}
		}
		if req.CoverImageID != nil {
			doc.CoverImageID = req.CoverImageID
		}
		if req.Curation != nil {
			doc.Curation = req.Curation
		}
		if req.References != nil {
			doc.References = req.References
		}

		doc.UpdatedAt = time.Now()
		return s.docs.Update(txCtx, doc)
	})
}

// Submit moves a building draft into the review queue.
func (s *DocumentService) Submit(ctx context.Context, actor Actor, documentID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}

		now := time.Now()
		next, err := s.engine.Authorize(doc, ActionSubmit, now)
		if err != nil {
			return err
		}

		oldStatus := doc.Status
		doc.Status = next
		doc.SubmittedAt = &now
		doc.RejectionReason = nil
		doc.SubmissionHistory = s.limiter.Record(doc.SubmissionHistory, now)
		doc.UpdatedAt = now

		if err := s.docs.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.stats.Transfer(txCtx, oldStatus, next); err != nil {
			return err
		}

		s.logger.Info("document submitted", "id", doc.ID, "slug", doc.Slug)
		return nil
	})
}

// Approve publishes a pending document. Admin only.
func (s *DocumentService) Approve(ctx context.Context, actor Actor, documentID string) error {
	if !actor.Admin {
		return domain.ErrForbidden
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docs.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		now := time.Now()
		next, err := s.engine.Authorize(doc, ActionApprove, now)
		if err != nil {
			return err
		}

		oldStatus := doc.Status
		doc.Status = next
		doc.PublishedAt = &now
		doc.UpdatedAt = now

		if err := s.docs.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.stats.Transfer(txCtx, oldStatus, next); err != nil {
			return err
		}

		s.logger.Info("document approved", "id", doc.ID, "slug", doc.Slug)
		return nil
	})
}

// Reject returns a pending document to its author with a reason.
// Admin only.
func (s *DocumentService) Reject(ctx context.Context, actor Actor, documentID, reason string) error {
	if !actor.Admin {
		return domain.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	if len(reason) > config.MaxRejectionReasonLength {
		return fmt.Errorf("%w: rejection reason exceeds %d characters", domain.ErrValidation, config.MaxRejectionReasonLength)
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docs.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		now := time.Now()
		next, err := s.engine.Authorize(doc, ActionReject, now)
		if err != nil {
			return err
		}

		oldStatus := doc.Status
		doc.Status = next
		doc.RejectionReason = &reason
		doc.UpdatedAt = now

		if err := s.docs.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.stats.Transfer(txCtx, oldStatus, next); err != nil {
			return err
		}

		s.logger.Info("document rejected", "id", doc.ID)
		return nil
	})
}

// Publish publishes a building draft directly, bypassing review.
func (s *DocumentService) Publish(ctx context.Context, actor Actor, documentID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}

		now := time.Now()
		next, err := s.engine.Authorize(doc, ActionPublish, now)
		if err != nil {
			return err
		}

		oldStatus := doc.Status
		doc.Status = next
		doc.PublishedAt = &now
		doc.UpdatedAt = now

		if err := s.docs.Update(txCtx, doc); err != nil {
			return err
		}
		if err := s.stats.Transfer(txCtx, oldStatus, next); err != nil {
			return err
		}

		s.logger.Info("document published", "id", doc.ID, "slug", doc.Slug)
		return nil
	})
}

// Remove hard-deletes a document, cascading its redirects and shifting
// the counter for the status it held at deletion time.
func (s *DocumentService) Remove(ctx context.Context, actor Actor, documentID string) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.fetchOwned(txCtx, actor, documentID)
		if err != nil {
			return err
		}
		if _, err := s.engine.Authorize(doc, ActionRemove, time.Now()); err != nil {
			return err
		}

		deleted, err := s.redirects.DeleteAllForDocument(txCtx, doc.ID)
		if err != nil {
			return err
		}
		if err := s.docs.Delete(txCtx, doc.ID); err != nil {
			return err
		}
		if err := s.stats.Decrement(txCtx, doc.Status); err != nil {
			return err
		}

		s.logger.Info("document removed",
			"id", doc.ID,
			"status", doc.Status,
			"redirects_deleted", deleted,
		)
		return nil
	})
}

// Get retrieves a document. Published documents are visible to anyone;
// drafts and pending documents only to their author. Invisible
// documents read as not found rather than leaking their existence.
func (s *DocumentService) Get(ctx context.Context, actor Actor, documentID string) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.visible(doc, actor)
}

// GetForEdit retrieves a document for its author, any status.
func (s *DocumentService) GetForEdit(ctx context.Context, actor Actor, documentID string) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.AuthorID != actor.ID {
		return nil, fmt.Errorf("document %s: %w", doc.ID, domain.ErrOwnership)
	}
	return doc, nil
}

// GetBySlug resolves a slug to a document, following a redirect when
// the slug is retired. Redirected results carry the canonical slug so
// the caller can issue a permanent redirect.
func (s *DocumentService) GetBySlug(ctx context.Context, actor Actor, slug string) (*GetBySlugResult, error) {
	doc, err := s.docs.GetBySlug(ctx, slug)
	if err == nil {
		visible, verr := s.visible(doc, actor)
		if verr != nil {
			return nil, verr
		}
		return &GetBySlugResult{Document: visible, CanonicalSlug: visible.Slug}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	documentID, err := s.redirects.Resolve(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
	}
	doc, err = s.docs.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("slug %s: %w", slug, domain.ErrNotFound)
		}
		return nil, err
	}
	visible, err := s.visible(doc, actor)
	if err != nil {
		return nil, err
	}

	return &GetBySlugResult{
		Document:      visible,
		CanonicalSlug: visible.Slug,
		Redirected:    true,
	}, nil
}

// GetForAdminReview retrieves a document for the review surface with
// the author identity stripped. Admin only.
func (s *DocumentService) GetForAdminReview(ctx context.Context, actor Actor, documentID string) (*models.Document, error) {
	if !actor.Admin {
		return nil, domain.ErrForbidden
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return doc.Anonymized(), nil
}

// List pages through the actor's own documents, newest first.
func (s *DocumentService) List(ctx context.Context, actor Actor, limit, offset int) (*repositories.DocumentPage, error) {
	limit, offset = clampPage(limit, offset)
	return s.docs.ListByAuthor(ctx, actor.ID, limit, offset)
}

// ListPendingForAdmin pages through the review queue, oldest submission
// first, with author identities stripped. Admin only.
func (s *DocumentService) ListPendingForAdmin(ctx context.Context, actor Actor, limit, offset int) (*repositories.DocumentPage, error) {
	if !actor.Admin {
		return nil, domain.ErrForbidden
	}

	limit, offset = clampPage(limit, offset)
	page, err := s.docs.ListByStatus(ctx, models.StatusPending, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range page.Documents {
		page.Documents[i].AuthorID = ""
	}
	return page, nil
}

// GetAdminStats returns the dashboard counters. Admin only.
func (s *DocumentService) GetAdminStats(ctx context.Context, actor Actor) (*AdminStats, error) {
	if !actor.Admin {
		return nil, domain.ErrForbidden
	}
	return s.statsSvc.GetAdminStats(ctx)
}

// fetchOwned loads a document and verifies the actor owns it. Always
// called inside the write transaction so the ownership and status
// checks see the state the mutation will apply to.
func (s *DocumentService) fetchOwned(ctx context.Context, actor Actor, documentID string) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.AuthorID != actor.ID {
		return nil, fmt.Errorf("document %s: %w", doc.ID, domain.ErrOwnership)
	}
	return doc, nil
}

// applyTitle sets a new title on doc, regenerating the slug and
// maintaining redirects. Mutates doc in place; the caller persists it.
func (s *DocumentService) applyTitle(ctx context.Context, doc *models.Document, title string, confirmSlugDeletion bool) (*UpdateTitleResult, error) {
	slug, err := GenerateUniqueSlug(title, doc.ID, func(candidate string) (bool, error) {
		return s.docs.SlugExists(ctx, candidate, doc.ID)
	})
	if err != nil {
		return nil, err
	}

	if slug == doc.Slug {
		doc.Title = title
		return &UpdateTitleResult{Slug: slug}, nil
	}

	preview, err := s.redirects.PreviewEviction(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if preview.WouldDelete != nil && !confirmSlugDeletion {
		return nil, &domain.SlugDeletionRequiredError{Slug: *preview.WouldDelete}
	}

	deletedSlug, err := s.redirects.AddRedirect(ctx, doc.ID, doc.Slug)
	if err != nil {
		return nil, err
	}
	// Renaming back to a retired slug: the old redirect row would now
	// shadow the current slug, so drop it.
	if err := s.redirects.DeleteBySlug(ctx, slug); err != nil {
		return nil, err
	}

	doc.Title = title
	doc.Slug = slug
	return &UpdateTitleResult{Slug: slug, SlugDeleted: deletedSlug}, nil
}

// visible applies read visibility: published for everyone, otherwise
// author only. The refusal is a bare not-found so a denied reader
// learns nothing about the document, its ID included.
func (s *DocumentService) visible(doc *models.Document, actor Actor) (*models.Document, error) {
	if doc.Status == models.StatusPublished {
		return doc, nil
	}
	if actor.ID != "" && doc.AuthorID == actor.ID {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

// validateCreateRequest validates a document creation request
func (s *DocumentService) validateCreateRequest(req *CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AuthorID, validation.Required),
		validation.Field(&req.Title, validation.Length(0, config.MaxTitleLength)),
		validation.Field(&req.Type,
			validation.Required,
			validation.By(func(value interface{}) error {
				t, _ := value.(string)
				if !s.types.IsValid(t) {
					return fmt.Errorf("unknown document type: %s", t)
				}
				return nil
			}),
		),
	)
}

// validateCuration validates curation metadata for curated documents
func validateCuration(c *models.Curation) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SourceURL, validation.Required, is.URL),
		validation.Field(&c.SourceTitle, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&c.Spin, validation.Required),
	)
}

// clampPage normalizes pagination inputs.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
