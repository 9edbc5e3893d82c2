package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetops/fms/backend/internal/domain"
)

// AnalyticsRepo computes the aggregate KPI queries behind the dashboard.
type AnalyticsRepo interface {
	// Dashboard returns the KPI snapshot. Time-windowed aggregates (fuel
	// cost, completed-trips series, total trip count) cover rows at or
	// after since; the status counts are current-state.
	Dashboard(ctx context.Context, since time.Time) (domain.DashboardStats, error)
}

// pgAnalyticsRepo is the Postgres implementation of AnalyticsRepo.
type pgAnalyticsRepo struct {
	db db
}

// NewAnalyticsRepo constructs an AnalyticsRepo backed by the provided db connection.
func NewAnalyticsRepo(db db) AnalyticsRepo {
	return &pgAnalyticsRepo{db: db}
}

func (r *pgAnalyticsRepo) Dashboard(ctx context.Context, since time.Time) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	const qKPIs = `
		SELECT
			COALESCE((SELECT sum(estimated_fuel_cost) FROM trips
				WHERE actual_end_time >= @since), 0),
			(SELECT count(*) FROM trips WHERE status = 'In Transit'),
			(SELECT count(*) FROM trips WHERE status = 'Scheduled'),
			(SELECT count(*) FROM trucks WHERE status = 'Maintenance'),
			(SELECT count(*) FROM trips
				WHERE scheduled_start_time >= @since OR actual_start_time >= @since)`

	err := r.db.QueryRow(ctx, qKPIs, pgx.NamedArgs{"since": since}).Scan(
		&stats.TotalFuelCost,
		&stats.ActiveTrips,
		&stats.ScheduledTrips,
		&stats.MaintenanceTrucks,
		&stats.TotalTripsLast30Days,
	)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("repo.AnalyticsRepo.Dashboard: kpis: %w", err)
	}

	const qSeries = `
		SELECT to_char(actual_end_time::date, 'YYYY-MM-DD'), count(*)
		FROM trips
		WHERE status = 'Completed' AND actual_end_time >= @since
		GROUP BY actual_end_time::date
		ORDER BY actual_end_time::date`

	rows, err := r.db.Query(ctx, qSeries, pgx.NamedArgs{"since": since})
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("repo.AnalyticsRepo.Dashboard: series: %w", err)
	}
	defer rows.Close()

	stats.TripTimeSeries = []domain.TripsPerDay{}
	for rows.Next() {
		var bucket domain.TripsPerDay
		if err := rows.Scan(&bucket.Date, &bucket.TripsCompleted); err != nil {
			return domain.DashboardStats{}, fmt.Errorf("repo.AnalyticsRepo.Dashboard: scan: %w", err)
		}
		stats.TripTimeSeries = append(stats.TripTimeSeries, bucket)
	}
	if err := rows.Err(); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("repo.AnalyticsRepo.Dashboard: rows: %w", err)
	}

	return stats, nil
}
