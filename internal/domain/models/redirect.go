package models

import "time"

// SlugRedirect maps a retired slug back to its document. At most
// config.MaxRedirectsPerDocument rows exist per document; inserting past
// the bound evicts the oldest row (CreatedAt ascending, ID ascending on
// ties - ID is a serial, so ties break by insertion order).
type SlugRedirect struct {
	ID         int64     `json:"id" db:"id"`
	OldSlug    string    `json:"old_slug" db:"old_slug"`
	DocumentID string    `json:"document_id" db:"document_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
