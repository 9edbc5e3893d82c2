// Package domain contains the core data types for the fleet management backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, realtime).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	StatusScheduled TripStatus = "Scheduled"
	StatusInTransit TripStatus = "In Transit"
	StatusCompleted TripStatus = "Completed"
	StatusCancelled TripStatus = "Cancelled"
	StatusDelayed   TripStatus = "Delayed"
	StatusRescue    TripStatus = "Rescue"
	StatusBackload  TripStatus = "Backload"
)

// UpdateStatuses is the set of values accepted by the status-update endpoint.
// It is deliberately not the same set a stored trip may hold: Rescue and
// Backload are operator-entered values that never arrive through the status
// endpoint, while Delayed is only ever set through it. The two sets are kept
// as separate configured lists rather than unified.
var UpdateStatuses = []TripStatus{
	StatusInTransit,
	StatusCompleted,
	StatusCancelled,
	StatusDelayed,
	StatusScheduled,
}

// ActiveStatuses are the states that count as an active assignment for
// driver-conflict checks. A driver may hold at most one trip in these states.
var ActiveStatuses = []TripStatus{StatusScheduled, StatusInTransit}

// ParseUpdateStatus reports whether raw is a member of UpdateStatuses and
// returns the typed value when it is.
func ParseUpdateStatus(raw string) (TripStatus, bool) {
	for _, s := range UpdateStatuses {
		if raw == string(s) {
			return s, true
		}
	}
	return "", false
}

// Terminal reports whether the status ends the trip lifecycle.
// Not enforced as a transition guard — any non-terminal value may still be
// set on a terminal trip, matching dispatcher override behaviour.
func (s TripStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// LoadType classifies the cargo of a trip.
type LoadType string

const (
	LoadDry     LoadType = "Dry"
	LoadChilled LoadType = "Chilled"
	LoadRef     LoadType = "Ref"
	LoadCombi   LoadType = "Combi"
)

// Trip is a scheduled transport assignment linking a truck, a driver, and a
// cargo load. It is the central transactional entity: created through the
// availability checks in service.TripService.Create and mutated afterwards
// only through SetStatus. Trips are never hard-deleted by the workflow —
// cancellation is a status value, not a row removal.
type Trip struct {
	ID       uuid.UUID `json:"trip_id"`
	TripCode string    `json:"trip_code"`

	// Assignment references. Nullable: unassignment clears the reference,
	// it never deletes the trip.
	CustomerID *uuid.UUID `json:"customer,omitempty"`
	TruckID    *uuid.UUID `json:"truck"`
	DriverID   *uuid.UUID `json:"assigned_driver"`
	Helper1ID  *uuid.UUID `json:"helper1,omitempty"`
	Helper2ID  *uuid.UUID `json:"helper2,omitempty"`

	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`

	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"` // latched once, on first In Transit
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`

	Status    TripStatus `json:"status"`
	LoadType  LoadType   `json:"load_type"`
	NetWeight float64    `json:"net_weight"`

	// Analytics fields populated by external tooling; read-only here.
	EstimatedFuelCost *float64 `json:"estimated_fuel_cost,omitempty"`
	DistanceKM        *float64 `json:"distance_km,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripDetail is the trip projection returned by detail endpoints and the
// status update. It resolves assignment foreign keys into the human-readable
// fields dispatcher screens show.
type TripDetail struct {
	Trip
	TruckLicensePlate string `json:"truck_license_plate,omitempty"`
	DriverName        string `json:"driver_name,omitempty"`
}
