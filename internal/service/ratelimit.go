package service

import (
	"time"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

// SubmissionLimiter bounds how often a document may be resubmitted for
// review. It is stateless: the window is recomputed from the document's
// stored submission history on every call, so a document becomes
// submittable again exactly when its oldest qualifying timestamp ages
// out of the window. No separate counter exists to drift.
type SubmissionLimiter struct {
	window    time.Duration
	limit     int
	maxStored int
}

// NewSubmissionLimiter creates a limiter with the configured window and
// limit.
func NewSubmissionLimiter() *SubmissionLimiter {
	return &SubmissionLimiter{
		window:    config.SubmissionWindow,
		limit:     config.SubmissionLimit,
		maxStored: config.MaxStoredSubmissions,
	}
}

// Check returns nil when a submission at now is allowed, or a
// RateLimitError carrying when the oldest in-window entry expires.
func (l *SubmissionLimiter) Check(history []int64, now time.Time) error {
	recent := l.inWindow(history, now)
	if len(recent) < l.limit {
		return nil
	}

	oldest := time.UnixMilli(recent[0])
	return &domain.RateLimitError{
		RetryAfter: oldest.Add(l.window).Sub(now),
	}
}

// Record appends now to the history and prunes it to the most recent
// maxStored entries. Callers persist the returned slice alongside the
// status change.
func (l *SubmissionLimiter) Record(history []int64, now time.Time) []int64 {
	updated := append(append([]int64{}, history...), now.UnixMilli())
	if len(updated) > l.maxStored {
		updated = updated[len(updated)-l.maxStored:]
	}
	return updated
}

// inWindow filters history to entries strictly newer than now-window,
// preserving order (history is stored newest last).
func (l *SubmissionLimiter) inWindow(history []int64, now time.Time) []int64 {
	cutoff := now.Add(-l.window).UnixMilli()

	var recent []int64
	for _, ts := range history {
		if ts > cutoff {
			recent = append(recent, ts)
		}
	}
	return recent
}
