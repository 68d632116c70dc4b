package models

import (
	"encoding/json"
	"time"
)

// DocumentType classifies where a document's material comes from.
type DocumentType string

const (
	TypeOwn         DocumentType = "own"         // original writing
	TypeCurated     DocumentType = "curated"     // commentary on an external source
	TypeInspiration DocumentType = "inspiration" // loose notes, no source required
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusBuilding  DocumentStatus = "building"  // editable draft
	StatusPending   DocumentStatus = "pending"   // submitted, immutable until an admin acts
	StatusPublished DocumentStatus = "published" // finalized, publicly visible
)

// Curation describes the external source a curated document comments on.
// Required before a curated document may be submitted or published.
type Curation struct {
	SourceURL    string  `json:"source_url" db:"source_url"`
	SourceTitle  string  `json:"source_title" db:"source_title"`
	SourceAuthor *string `json:"source_author,omitempty" db:"source_author"`
	Spin         string  `json:"spin" db:"spin"`
}

// Document is the core content record. Content is an opaque structured
// blob (JSON tree); the backend never interprets it beyond text/heading
// extraction. SubmissionHistory holds epoch-ms timestamps of past review
// submissions, newest last.
type Document struct {
	ID                string          `json:"id" db:"id"`
	AuthorID          string          `json:"author_id" db:"author_id"`
	Title             string          `json:"title" db:"title"`
	Slug              string          `json:"slug" db:"slug"`
	Content           json.RawMessage `json:"content" db:"content"`
	Type              DocumentType    `json:"type" db:"type"`
	Status            DocumentStatus  `json:"status" db:"status"`
	CoverImageID      *string         `json:"cover_image_id,omitempty" db:"cover_image_id"`
	Curation          *Curation       `json:"curation,omitempty" db:"curation"`
	References        []string        `json:"references,omitempty" db:"references"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
	PublishedAt       *time.Time      `json:"published_at,omitempty" db:"published_at"`
	SubmittedAt       *time.Time      `json:"submitted_at,omitempty" db:"submitted_at"`
	RejectionReason   *string         `json:"rejection_reason,omitempty" db:"rejection_reason"`
	SubmissionHistory []int64         `json:"submission_history,omitempty" db:"submission_history"`
}

// Anonymized returns a review copy with the author identity stripped, so
// admin reviewers never see who wrote a pending document.
func (d *Document) Anonymized() *Document {
	review := *d
	review.AuthorID = ""
	return &review
}

// ValidTypes lists the accepted document types.
func ValidTypes() []DocumentType {
	return []DocumentType{TypeOwn, TypeCurated, TypeInspiration}
}
