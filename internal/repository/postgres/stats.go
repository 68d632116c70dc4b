package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// statsRowID keys the singleton aggregate row.
const statsRowID = 1

// PostgresStatsRepository implements the StatsRepository interface
type PostgresStatsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(config *RepositoryConfig) repositories.StatsRepository {
	return &PostgresStatsRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get fetches the singleton aggregate
func (r *PostgresStatsRepository) Get(ctx context.Context) (*models.StatsAggregate, error) {
	query := fmt.Sprintf(`
		SELECT building_count, pending_count, published_count, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.DocumentStats)

	var stats models.StatsAggregate
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, statsRowID).Scan(
		&stats.BuildingCount,
		&stats.PendingCount,
		&stats.PublishedCount,
		&stats.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("stats aggregate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get stats aggregate: %w", err)
	}

	return &stats, nil
}

// Increment adds one to the counter for status. Upserts so the first
// status change ever also seeds the row.
func (r *PostgresStatsRepository) Increment(ctx context.Context, status models.DocumentStatus) error {
	column, err := statsColumn(status)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, building_count, pending_count, published_count, updated_at)
		VALUES ($1, %s, NOW())
		ON CONFLICT (id) DO UPDATE
		SET %s = %s.%s + 1, updated_at = NOW()
	`, r.tables.DocumentStats, seedValues(status, 1), column, r.tables.DocumentStats, column)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, statsRowID); err != nil {
		return fmt.Errorf("increment %s count: %w", status, err)
	}

	return nil
}

// Decrement subtracts one from the counter for status, floored at 0
func (r *PostgresStatsRepository) Decrement(ctx context.Context, status models.DocumentStatus) error {
	column, err := statsColumn(status)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, building_count, pending_count, published_count, updated_at)
		VALUES ($1, %s, NOW())
		ON CONFLICT (id) DO UPDATE
		SET %s = GREATEST(%s.%s - 1, 0), updated_at = NOW()
	`, r.tables.DocumentStats, seedValues(status, 0), column, r.tables.DocumentStats, column)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, statsRowID); err != nil {
		return fmt.Errorf("decrement %s count: %w", status, err)
	}

	return nil
}

// Transfer moves one count between statuses in a single statement
func (r *PostgresStatsRepository) Transfer(ctx context.Context, oldStatus, newStatus models.DocumentStatus) error {
	if oldStatus == newStatus {
		return nil
	}

	oldColumn, err := statsColumn(oldStatus)
	if err != nil {
		return err
	}
	newColumn, err := statsColumn(newStatus)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, building_count, pending_count, published_count, updated_at)
		VALUES ($1, %s, NOW())
		ON CONFLICT (id) DO UPDATE
		SET %s = GREATEST(%s.%s - 1, 0),
			%s = %s.%s + 1,
			updated_at = NOW()
	`, r.tables.DocumentStats, seedValues(newStatus, 1),
		oldColumn, r.tables.DocumentStats, oldColumn,
		newColumn, r.tables.DocumentStats, newColumn)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, statsRowID); err != nil {
		return fmt.Errorf("transfer count %s -> %s: %w", oldStatus, newStatus, err)
	}

	return nil
}

// Seed writes the aggregate wholesale (bootstrap/repair)
func (r *PostgresStatsRepository) Seed(ctx context.Context, stats *models.StatsAggregate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, building_count, pending_count, published_count, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET building_count = $2, pending_count = $3, published_count = $4, updated_at = NOW()
	`, r.tables.DocumentStats)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, statsRowID,
		stats.BuildingCount,
		stats.PendingCount,
		stats.PublishedCount,
	)
	if err != nil {
		return fmt.Errorf("seed stats aggregate: %w", err)
	}

	return nil
}

// statsColumn maps a status to its counter column. Statuses are a closed
// enum, so interpolating the column name is safe.
func statsColumn(status models.DocumentStatus) (string, error) {
	switch status {
	case models.StatusBuilding:
		return "building_count", nil
	case models.StatusPending:
		return "pending_count", nil
	case models.StatusPublished:
		return "published_count", nil
	default:
		return "", fmt.Errorf("unknown status %q: %w", status, domain.ErrValidation)
	}
}

// seedValues renders the initial counter tuple for the upsert insert arm
func seedValues(status models.DocumentStatus, initial int) string {
	building, pending, published := 0, 0, 0
	switch status {
	case models.StatusBuilding:
		building = initial
	case models.StatusPending:
		pending = initial
	case models.StatusPublished:
		published = initial
	}
	return fmt.Sprintf("%d, %d, %d", building, pending, published)
}
