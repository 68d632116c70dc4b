package service

import (
	"errors"
	"testing"
	"time"

	"inkwell/internal/doctypes"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func newTestEngine(t *testing.T) *TransitionEngine {
	t.Helper()
	registry, err := doctypes.NewRegistry()
	if err != nil {
		t.Fatalf("loading doctype registry: %v", err)
	}
	return NewTransitionEngine(registry, NewSubmissionLimiter())
}

func buildingDoc() *models.Document {
	return &models.Document{
		ID:       "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		AuthorID: "author-1",
		Title:    "A Real Title",
		Slug:     "a-real-title",
		Type:     models.TypeOwn,
		Status:   models.StatusBuilding,
	}
}

func TestAuthorizeSubmit(t *testing.T) {
	engine := newTestEngine(t)
	now := time.Now()

	t.Run("building with valid title submits", func(t *testing.T) {
		doc := buildingDoc()
		next, err := engine.Authorize(doc, ActionSubmit, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next != models.StatusPending {
			t.Errorf("next = %q, want pending", next)
		}
	})

	t.Run("invalid title refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Title = "untitled"
		_, err := engine.Authorize(doc, ActionSubmit, now)
		if !errors.Is(err, domain.ErrInvalidTitle) {
			t.Errorf("err = %v, want ErrInvalidTitle", err)
		}
	})

	t.Run("curated without curation refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Type = models.TypeCurated
		_, err := engine.Authorize(doc, ActionSubmit, now)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("curated with curation submits", func(t *testing.T) {
		doc := buildingDoc()
		doc.Type = models.TypeCurated
		doc.Curation = &models.Curation{
			SourceURL:   "https://example.com/article",
			SourceTitle: "Original",
			Spin:        "my take",
		}
		if _, err := engine.Authorize(doc, ActionSubmit, now); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rate limited after three recent submissions", func(t *testing.T) {
		doc := buildingDoc()
		doc.SubmissionHistory = []int64{
			now.Add(-3 * time.Hour).UnixMilli(),
			now.Add(-2 * time.Hour).UnixMilli(),
			now.Add(-1 * time.Hour).UnixMilli(),
		}
		_, err := engine.Authorize(doc, ActionSubmit, now)
		if !errors.Is(err, domain.ErrRateLimit) {
			t.Errorf("err = %v, want ErrRateLimit", err)
		}
	})

	t.Run("pending document refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPending
		_, err := engine.Authorize(doc, ActionSubmit, now)
		if !errors.Is(err, domain.ErrPendingReview) {
			t.Errorf("err = %v, want ErrPendingReview", err)
		}
	})

	t.Run("published document refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPublished
		_, err := engine.Authorize(doc, ActionSubmit, now)
		if !errors.Is(err, domain.ErrAlreadyPublished) {
			t.Errorf("err = %v, want ErrAlreadyPublished", err)
		}
	})
}

func TestAuthorizeAdminActions(t *testing.T) {
	engine := newTestEngine(t)
	now := time.Now()

	t.Run("approve pending", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPending
		next, err := engine.Authorize(doc, ActionApprove, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next != models.StatusPublished {
			t.Errorf("next = %q, want published", next)
		}
	})

	t.Run("reject pending returns to building", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPending
		next, err := engine.Authorize(doc, ActionReject, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next != models.StatusBuilding {
			t.Errorf("next = %q, want building", next)
		}
	})

	t.Run("approve building refused", func(t *testing.T) {
		doc := buildingDoc()
		_, err := engine.Authorize(doc, ActionApprove, now)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("err = %v, want ErrInvalidStatus", err)
		}
	})

	t.Run("reject published refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPublished
		_, err := engine.Authorize(doc, ActionReject, now)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("err = %v, want ErrInvalidStatus", err)
		}
	})
}

func TestAuthorizePublish(t *testing.T) {
	engine := newTestEngine(t)
	now := time.Now()

	t.Run("building publishes directly", func(t *testing.T) {
		doc := buildingDoc()
		next, err := engine.Authorize(doc, ActionPublish, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next != models.StatusPublished {
			t.Errorf("next = %q, want published", next)
		}
	})

	t.Run("pending cannot publish", func(t *testing.T) {
		doc := buildingDoc()
		doc.Status = models.StatusPending
		_, err := engine.Authorize(doc, ActionPublish, now)
		if !errors.Is(err, domain.ErrPendingReview) {
			t.Errorf("err = %v, want ErrPendingReview", err)
		}
	})

	t.Run("publish without title refused", func(t *testing.T) {
		doc := buildingDoc()
		doc.Title = ""
		_, err := engine.Authorize(doc, ActionPublish, now)
		if !errors.Is(err, domain.ErrInvalidTitle) {
			t.Errorf("err = %v, want ErrInvalidTitle", err)
		}
	})
}

func TestAuthorizeEdit(t *testing.T) {
	engine := newTestEngine(t)
	now := time.Now()

	tests := []struct {
		name    string
		status  models.DocumentStatus
		wantErr error
	}{
		{"building is editable", models.StatusBuilding, nil},
		{"pending is frozen", models.StatusPending, domain.ErrPendingReview},
		{"published is immutable", models.StatusPublished, domain.ErrPublished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildingDoc()
			doc.Status = tt.status
			_, err := engine.Authorize(doc, ActionEdit, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeRemove(t *testing.T) {
	engine := newTestEngine(t)
	now := time.Now()

	for _, status := range []models.DocumentStatus{
		models.StatusBuilding,
		models.StatusPending,
		models.StatusPublished,
	} {
		t.Run(string(status), func(t *testing.T) {
			doc := buildingDoc()
			doc.Status = status
			if _, err := engine.Authorize(doc, ActionRemove, now); err != nil {
				t.Errorf("remove from %s: %v", status, err)
			}
		})
	}
}
