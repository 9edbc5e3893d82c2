package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// dashboardWindow is the rolling window covered by the time-based
// dashboard aggregates.
const dashboardWindow = 30 * 24 * time.Hour

// AnalyticsService serves the dashboard KPI snapshot.
type AnalyticsService struct {
	analytics repo.AnalyticsRepo
	now       func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService backed by the provided repo.
func NewAnalyticsService(analytics repo.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, now: time.Now}
}

// Dashboard returns the fleet KPI snapshot over the trailing 30 days.
func (s *AnalyticsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	since := s.now().UTC().Add(-dashboardWindow)
	stats, err := s.analytics.Dashboard(ctx, since)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}
	if stats.TripTimeSeries == nil {
		stats.TripTimeSeries = []domain.TripsPerDay{}
	}
	return stats, nil
}
