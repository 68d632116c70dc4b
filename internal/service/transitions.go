package service

import (
	"fmt"
	"time"

	"inkwell/internal/doctypes"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// Action is a lifecycle operation validated against the transition table.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionPublish Action = "publish"
	ActionEdit    Action = "edit"
	ActionRemove  Action = "remove"
)

// TransitionEngine holds the legal state graph for a document. Every
// status-dependent check routes through the one table below instead of
// each mutation re-deriving its own guard, so adding a mutable field
// never touches guard logic.
type TransitionEngine struct {
	types   *doctypes.Registry
	limiter *SubmissionLimiter
}

// NewTransitionEngine creates a new transition engine
func NewTransitionEngine(types *doctypes.Registry, limiter *SubmissionLimiter) *TransitionEngine {
	return &TransitionEngine{
		types:   types,
		limiter: limiter,
	}
}

// transitionRule is one row of the state graph: which statuses the
// action is legal from, where it lands, how an illegal current status
// maps to its status-specific error, and any extra precondition.
type transitionRule struct {
	next         map[models.DocumentStatus]models.DocumentStatus
	wrongState   func(models.DocumentStatus) error
	precondition func(e *TransitionEngine, doc *models.Document, now time.Time) error
}

// transitions is the complete legal state graph. Callers must be able
// to distinguish "already published" from "under review" from "wrong
// state for this admin action", so each row maps illegal statuses to
// its own error rather than a generic one.
var transitions = map[Action]transitionRule{
	ActionSubmit: {
		next:         map[models.DocumentStatus]models.DocumentStatus{models.StatusBuilding: models.StatusPending},
		wrongState:   submitOrPublishError,
		precondition: (*TransitionEngine).checkSubmittable,
	},
	ActionApprove: {
		next:       map[models.DocumentStatus]models.DocumentStatus{models.StatusPending: models.StatusPublished},
		wrongState: adminStateError,
	},
	ActionReject: {
		next:       map[models.DocumentStatus]models.DocumentStatus{models.StatusPending: models.StatusBuilding},
		wrongState: adminStateError,
	},
	ActionPublish: {
		next:         map[models.DocumentStatus]models.DocumentStatus{models.StatusBuilding: models.StatusPublished},
		wrongState:   submitOrPublishError,
		precondition: (*TransitionEngine).checkPublishable,
	},
	ActionEdit: {
		next:       map[models.DocumentStatus]models.DocumentStatus{models.StatusBuilding: models.StatusBuilding},
		wrongState: editStateError,
	},
	ActionRemove: {
		next: map[models.DocumentStatus]models.DocumentStatus{
			models.StatusBuilding:  "",
			models.StatusPending:   "",
			models.StatusPublished: "",
		},
		wrongState: func(status models.DocumentStatus) error {
			return fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
		},
	},
}

// Authorize validates an action against the state graph and the row's
// precondition. It returns the status the document lands in; for
// ActionEdit and ActionRemove the returned status is not meaningful.
func (e *TransitionEngine) Authorize(doc *models.Document, action Action, now time.Time) (models.DocumentStatus, error) {
	rule, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("unknown action %q: %w", action, domain.ErrValidation)
	}

	next, legal := rule.next[doc.Status]
	if !legal {
		return "", rule.wrongState(doc.Status)
	}

	if rule.precondition != nil {
		if err := rule.precondition(e, doc, now); err != nil {
			return "", err
		}
	}

	return next, nil
}

// checkSubmittable gates building -> pending: real title, curation
// metadata when the type demands it, and the submission rate limit.
func (e *TransitionEngine) checkSubmittable(doc *models.Document, now time.Time) error {
	if err := e.checkContentReady(doc); err != nil {
		return err
	}
	return e.limiter.Check(doc.SubmissionHistory, now)
}

// checkPublishable gates building -> published without review.
func (e *TransitionEngine) checkPublishable(doc *models.Document, now time.Time) error {
	rules, err := e.types.Get(string(doc.Type))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !rules.AllowsDirectPublish {
		return fmt.Errorf("%w: %s documents require review before publishing", domain.ErrValidation, doc.Type)
	}
	return e.checkContentReady(doc)
}

// checkContentReady enforces the shared submit/publish preconditions.
func (e *TransitionEngine) checkContentReady(doc *models.Document) error {
	if !IsValidTitle(doc.Title) {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrInvalidTitle)
	}

	rules, err := e.types.Get(string(doc.Type))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if rules.RequiresCuration && doc.Curation == nil {
		return fmt.Errorf("%w: %s documents require curation data", domain.ErrValidation, doc.Type)
	}

	return nil
}

// submitOrPublishError distinguishes the two illegal sources for
// submit/publish.
func submitOrPublishError(status models.DocumentStatus) error {
	switch status {
	case models.StatusPublished:
		return domain.ErrAlreadyPublished
	case models.StatusPending:
		return domain.ErrPendingReview
	default:
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}
}

// editStateError distinguishes why a mutation is blocked.
func editStateError(status models.DocumentStatus) error {
	switch status {
	case models.StatusPublished:
		return domain.ErrPublished
	case models.StatusPending:
		return domain.ErrPendingReview
	default:
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}
}

// adminStateError is returned when an admin action hits a document that
// is not pending.
func adminStateError(status models.DocumentStatus) error {
	return fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
}
