package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// StatsRepository persists the singleton per-status aggregate.
// All mutating methods must honor the transaction in the context: a
// status write may never commit without its counter shift, and vice
// versa.
type StatsRepository interface {
	// Get fetches the aggregate, or ErrNotFound if it was never seeded.
	Get(ctx context.Context) (*models.StatsAggregate, error)

	// Increment adds one to the counter for status.
	Increment(ctx context.Context, status models.DocumentStatus) error

	// Decrement subtracts one from the counter for status, floored at 0.
	Decrement(ctx context.Context, status models.DocumentStatus) error

	// Transfer moves one count from oldStatus to newStatus in a single
	// statement. No-op when the statuses are equal.
	Transfer(ctx context.Context, oldStatus, newStatus models.DocumentStatus) error

	// Seed writes the aggregate wholesale. Bootstrap/repair only.
	Seed(ctx context.Context, stats *models.StatsAggregate) error
}
