package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// StatsRepository is an in-memory implementation of the StatsRepository
// interface
type StatsRepository struct {
	mu     sync.RWMutex
	stats  models.StatsAggregate
	seeded bool
}

// NewStatsRepository creates a new in-memory stats repository
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

func (r *StatsRepository) Get(ctx context.Context) (*models.StatsAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.seeded {
		return nil, fmt.Errorf("stats aggregate: %w", domain.ErrNotFound)
	}

	copied := r.stats
	return &copied, nil
}

func (r *StatsRepository) Increment(ctx context.Context, status models.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.shift(status, 1); err != nil {
		return err
	}
	r.seeded = true
	r.stats.UpdatedAt = time.Now()
	return nil
}

func (r *StatsRepository) Decrement(ctx context.Context, status models.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.shift(status, -1); err != nil {
		return err
	}
	r.seeded = true
	r.stats.UpdatedAt = time.Now()
	return nil
}

func (r *StatsRepository) Transfer(ctx context.Context, oldStatus, newStatus models.DocumentStatus) error {
	if oldStatus == newStatus {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.shift(oldStatus, -1); err != nil {
		return err
	}
	if err := r.shift(newStatus, 1); err != nil {
		return err
	}
	r.seeded = true
	r.stats.UpdatedAt = time.Now()
	return nil
}

func (r *StatsRepository) Seed(ctx context.Context, stats *models.StatsAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = *stats
	r.stats.UpdatedAt = time.Now()
	r.seeded = true
	return nil
}

// shift adjusts one counter, flooring at 0 on decrement
func (r *StatsRepository) shift(status models.DocumentStatus, delta int) error {
	var counter *int
	switch status {
	case models.StatusBuilding:
		counter = &r.stats.BuildingCount
	case models.StatusPending:
		counter = &r.stats.PendingCount
	case models.StatusPublished:
		counter = &r.stats.PublishedCount
	default:
		return fmt.Errorf("unknown status %q: %w", status, domain.ErrValidation)
	}

	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
	return nil
}
