package config

import "time"

const (
	// MaxTitleLength is the maximum length for document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxSlugLength is the maximum length for generated slugs.
	// Slugs longer than this are truncated and any trailing hyphen
	// left by the cut is stripped.
	MaxSlugLength = 200

	// ShortIDLength is the number of trailing document-ID characters
	// appended to a slug when the bare slug would collide.
	ShortIDLength = 4

	// MaxRedirectsPerDocument bounds how many retired slugs still
	// resolve to a document. Inserting beyond the bound evicts the
	// oldest redirect.
	MaxRedirectsPerDocument = 2

	// SubmissionWindow is the rolling lookback over past submissions.
	SubmissionWindow = 24 * time.Hour

	// SubmissionLimit caps review submissions inside SubmissionWindow.
	SubmissionLimit = 3

	// MaxStoredSubmissions caps how many submission timestamps are
	// retained per document. Only entries inside SubmissionWindow
	// matter for rate limiting, so old entries are pruned on write.
	MaxStoredSubmissions = 10

	// MaxRejectionReasonLength bounds admin rejection reasons.
	MaxRejectionReasonLength = 2000
)
