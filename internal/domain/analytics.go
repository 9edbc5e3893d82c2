package domain

// TripsPerDay is one bucket of the completed-trips time series.
type TripsPerDay struct {
	Date           string `json:"date"` // "2006-01-02"
	TripsCompleted int64  `json:"trips_completed"`
}

// DashboardStats holds the KPI values for the operations dashboard.
// All counts are current-state except TotalFuelCost and TripTimeSeries,
// which cover the trailing 30 days.
type DashboardStats struct {
	TotalFuelCost        float64       `json:"total_fuel_cost"`
	ActiveTrips          int64         `json:"active_trips"`
	ScheduledTrips       int64         `json:"scheduled_trips"`
	MaintenanceTrucks    int64         `json:"maintenance_trucks"`
	TripTimeSeries       []TripsPerDay `json:"trip_time_series"`
	TotalTripsLast30Days int64         `json:"total_trips_last_30_days"`
}
