package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/models"
	"inkwell/internal/repository/memory"
)

func TestGetAdminStatsColdStart(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentRepository()
	stats := memory.NewStatsRepository()
	svc := NewStatsService(stats, docs, slog.Default())

	seedDoc := func(id string, status models.DocumentStatus) {
		t.Helper()
		require.NoError(t, docs.Create(ctx, &models.Document{
			ID:       id,
			AuthorID: "author-1",
			Slug:     "slug-" + id,
			Status:   status,
		}))
	}

	seedDoc("d1", models.StatusBuilding)
	seedDoc("d2", models.StatusBuilding)
	seedDoc("d3", models.StatusPending)
	seedDoc("d4", models.StatusPublished)

	// No aggregate exists yet: the service recounts from the documents
	// and seeds it.
	got, err := svc.GetAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.BuildingCount)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, 1, got.PublishedCount)
	assert.Equal(t, 4, got.TotalDocuments)

	// A second read hits the seeded aggregate, not the recount: a new
	// document without a matching counter update stays invisible.
	seedDoc("d5", models.StatusBuilding)
	got, err = svc.GetAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalDocuments)
}

func TestGetAdminStatsTracksTransfers(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentRepository()
	stats := memory.NewStatsRepository()
	svc := NewStatsService(stats, docs, slog.Default())

	require.NoError(t, stats.Increment(ctx, models.StatusBuilding))
	require.NoError(t, stats.Increment(ctx, models.StatusBuilding))
	require.NoError(t, stats.Transfer(ctx, models.StatusBuilding, models.StatusPending))

	got, err := svc.GetAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BuildingCount)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, 0, got.PublishedCount)
	assert.Equal(t, 2, got.TotalDocuments)
}

func TestRecountRepairsDrift(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentRepository()
	stats := memory.NewStatsRepository()
	svc := NewStatsService(stats, docs, slog.Default())

	require.NoError(t, docs.Create(ctx, &models.Document{
		ID:       "d1",
		AuthorID: "author-1",
		Slug:     "slug-d1",
		Status:   models.StatusPublished,
	}))

	// Drifted aggregate claims counts that do not match the documents.
	require.NoError(t, stats.Seed(ctx, &models.StatsAggregate{BuildingCount: 9}))

	aggregate, err := svc.Recount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, aggregate.BuildingCount)
	assert.Equal(t, 1, aggregate.PublishedCount)

	got, err := svc.GetAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalDocuments)
}

func TestStatsDecrementFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	stats := memory.NewStatsRepository()

	require.NoError(t, stats.Decrement(ctx, models.StatusBuilding))

	aggregate, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, aggregate.BuildingCount)
}

func TestStatsTransferSameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	stats := memory.NewStatsRepository()

	require.NoError(t, stats.Increment(ctx, models.StatusPending))
	require.NoError(t, stats.Transfer(ctx, models.StatusPending, models.StatusPending))

	aggregate, err := stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, aggregate.PendingCount)
}
