package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// AdminStats is the dashboard projection of the stats aggregate.
type AdminStats struct {
	TotalDocuments int `json:"total_documents"`
	BuildingCount  int `json:"building_count"`
	PendingCount   int `json:"pending_count"`
	PublishedCount int `json:"published_count"`
}

// StatsService reads the per-status aggregate. The steady-state path is
// an O(1) singleton fetch; the indexed recount only runs when the
// aggregate was never seeded (cold start) or when a repair is requested
// explicitly.
type StatsService struct {
	stats  repositories.StatsRepository
	docs   repositories.DocumentRepository
	logger *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(stats repositories.StatsRepository, docs repositories.DocumentRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		stats:  stats,
		docs:   docs,
		logger: logger,
	}
}

// GetAdminStats returns the per-status document counts.
func (s *StatsService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	aggregate, err := s.stats.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		// Cold start: the aggregate was never written. Recount once
		// from the status index and seed it.
		aggregate, err = s.Recount(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalDocuments: aggregate.Total(),
		BuildingCount:  aggregate.BuildingCount,
		PendingCount:   aggregate.PendingCount,
		PublishedCount: aggregate.PublishedCount,
	}, nil
}

// Recount rebuilds the aggregate from per-status indexed counts and
// seeds the singleton. Bootstrap and consistency repair only; relying
// on it at request time defeats the O(1) aggregate.
func (s *StatsService) Recount(ctx context.Context) (*models.StatsAggregate, error) {
	building, err := s.docs.CountByStatus(ctx, models.StatusBuilding)
	if err != nil {
		return nil, err
	}
	pending, err := s.docs.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	published, err := s.docs.CountByStatus(ctx, models.StatusPublished)
	if err != nil {
		return nil, err
	}

	aggregate := &models.StatsAggregate{
		BuildingCount:  building,
		PendingCount:   pending,
		PublishedCount: published,
		UpdatedAt:      time.Now(),
	}
	if err := s.stats.Seed(ctx, aggregate); err != nil {
		return nil, err
	}

	s.logger.Info("stats aggregate recounted",
		"building", building,
		"pending", pending,
		"published", published,
	)

	return aggregate, nil
}
