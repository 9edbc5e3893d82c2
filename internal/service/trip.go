// Package service contains the business logic for the fleet management API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/auth"
	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// Publisher pushes committed trip status changes to real-time subscribers.
// Implementations must not block on slow subscribers and must not surface
// delivery failures — by the time a publish runs, the status change is
// already durable, so a failed broadcast is logged and dropped.
type Publisher interface {
	PublishStatus(tripID uuid.UUID, status domain.TripStatus, lat, lng float64, at time.Time)
}

// Placeholder broadcast position used until device telemetry is wired into
// the status endpoint. Subscribers receive real coordinates only from
// driver-device messages relayed through the websocket channel.
const (
	placeholderLat = 14.5995
	placeholderLng = 120.9842
)

// TripService implements the trip workflow: creation gated by availability
// checks, the status lifecycle, and the append-only event/fuel logs.
type TripService struct {
	trips  repo.TripRepo
	trucks repo.TruckRepo
	logs   repo.TripLogRepo
	authz  auth.Provider
	pub    Publisher
}

// NewTripService constructs a TripService backed by the provided repos,
// authorization provider, and broadcast publisher.
func NewTripService(trips repo.TripRepo, trucks repo.TruckRepo, logs repo.TripLogRepo, authz auth.Provider, pub Publisher) *TripService {
	return &TripService{trips: trips, trucks: trucks, logs: logs, authz: authz, pub: pub}
}

// Create validates a proposed trip against truck capacity, truck
// availability, and driver scheduling conflicts, then persists it.
// Validation runs only here — later field edits do not re-check these rules.
// The stored trip always starts as Scheduled with a generated trip code; any
// client-supplied status is discarded.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.TruckID == nil {
		return domain.Trip{}, &domain.FieldError{Field: "truck", Message: "A truck must be assigned to the trip."}
	}
	if trip.DriverID == nil {
		return domain.Trip{}, &domain.FieldError{Field: "assigned_driver", Message: "A driver must be assigned to the trip."}
	}
	if trip.NetWeight <= 0 {
		return domain.Trip{}, &domain.FieldError{Field: "net_weight", Message: "Trip net weight must be provided."}
	}
	if trip.ScheduledStartTime.IsZero() {
		return domain.Trip{}, &domain.FieldError{Field: "scheduled_start_time", Message: "A scheduled start time is required."}
	}

	truck, err := s.trucks.GetByID(ctx, *trip.TruckID)
	if err != nil {
		// A dangling truck reference is a caller mistake, not a missing
		// resource on this endpoint.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, &domain.FieldError{Field: "truck", Message: "Assigned truck does not exist."}
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if trip.NetWeight > float64(truck.TonnerCapacity) {
		return domain.Trip{}, fmt.Errorf("%w: Trip load (%v kg) exceeds vehicle capacity (%v kg).",
			domain.ErrValidation, trip.NetWeight, truck.TonnerCapacity)
	}

	if truck.Status == domain.TruckMaintenance {
		return domain.Trip{}, fmt.Errorf("%w: Assigned truck %s is under maintenance and cannot be used.",
			domain.ErrValidation, truck.LicensePlate)
	}

	// Existence check by design, not a time-range overlap: one active trip
	// per driver at a time, however far apart the schedules are.
	busy, err := s.trips.DriverHasActiveTrip(ctx, *trip.DriverID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if busy {
		return domain.Trip{}, fmt.Errorf("%w: Assigned driver is currently scheduled for or driving another active trip.",
			domain.ErrValidation)
	}

	trip.Status = domain.StatusScheduled
	if trip.LoadType == "" {
		trip.LoadType = domain.LoadDry
	}
	if trip.TripCode == "" {
		trip.TripCode = newTripCode()
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// SetStatus transitions a trip to rawStatus on behalf of actor.
//
// The write is a single atomic update touching only status and (on the
// first transition into In Transit) actual_start_time. After the update
// commits, the change is broadcast to the trip's subscriber group;
// broadcast delivery is fire-and-forget and never fails the call.
func (s *TripService) SetStatus(ctx context.Context, tripID uuid.UUID, rawStatus string, actor domain.Actor) (domain.TripDetail, error) {
	status, ok := domain.ParseUpdateStatus(rawStatus)
	if !ok {
		return domain.TripDetail{}, fmt.Errorf("%w: Invalid status. Must be one of: %s",
			domain.ErrValidation, joinStatuses(domain.UpdateStatuses))
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.SetStatus: %w", err)
	}

	if !s.authz.IsSuperAdminOrDispatcher(actor) && !s.authz.IsAssignedDriver(actor, trip) {
		return domain.TripDetail{}, fmt.Errorf("%w: you do not have permission to update this trip", domain.ErrForbidden)
	}

	// actual_start_time is a one-time latch: set on the first transition
	// into In Transit, untouched by every later update.
	var startedAt *time.Time
	if status == domain.StatusInTransit && trip.ActualStartTime == nil {
		now := time.Now().UTC()
		startedAt = &now
	}

	detail, err := s.trips.UpdateStatus(ctx, tripID, status, startedAt)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.SetStatus: %w", err)
	}

	s.pub.PublishStatus(tripID, status, placeholderLat, placeholderLng, time.Now().UTC())

	return detail, nil
}

// GetDetail returns a single trip with plate and driver name resolved.
func (s *TripService) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	result, err := s.trips.GetDetailByID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips ordered by scheduled start descending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update overwrites the schedulable fields of an existing trip. The
// availability checks run only at creation, so edits here are persisted
// without re-validation. Status and actual timestamps are not editable.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip outright. Only super-admins and dispatchers may do
// this — the workflow itself never deletes; cancellation is a status value.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	if !s.authz.IsSuperAdminOrDispatcher(actor) {
		return fmt.Errorf("%w: you do not have permission to delete trips", domain.ErrForbidden)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddEvent appends a milestone event to a trip's log after verifying the
// trip exists and the event type is valid.
func (s *TripService) AddEvent(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error) {
	if !validEventType(ev.EventType) {
		return domain.TripEvent{}, &domain.FieldError{Field: "event_type", Message: "Event type is not recognized."}
	}
	if _, err := s.trips.GetByID(ctx, ev.TripID); err != nil {
		return domain.TripEvent{}, fmt.Errorf("service.TripService.AddEvent: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	result, err := s.logs.AddEvent(ctx, ev)
	if err != nil {
		return domain.TripEvent{}, fmt.Errorf("service.TripService.AddEvent: %w", err)
	}
	return result, nil
}

// ListEvents returns all logged events for a trip.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListEvents(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error) {
	events, err := s.logs.ListEvents(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListEvents: %w", err)
	}
	if events == nil {
		events = []domain.TripEvent{}
	}
	return events, nil
}

// AddFuel appends a fuel purchase record to a trip's log.
func (s *TripService) AddFuel(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error) {
	if f.Liters <= 0 {
		return domain.TripFuel{}, &domain.FieldError{Field: "liters", Message: "Fuel liters must be a positive amount."}
	}
	if _, err := s.trips.GetByID(ctx, f.TripID); err != nil {
		return domain.TripFuel{}, fmt.Errorf("service.TripService.AddFuel: %w", err)
	}
	result, err := s.logs.AddFuel(ctx, f)
	if err != nil {
		return domain.TripFuel{}, fmt.Errorf("service.TripService.AddFuel: %w", err)
	}
	return result, nil
}

// ListFuel returns all fuel records for a trip.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListFuel(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error) {
	fuels, err := s.logs.ListFuel(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListFuel: %w", err)
	}
	if fuels == nil {
		fuels = []domain.TripFuel{}
	}
	return fuels, nil
}

// newTripCode derives a short human-readable trip code from a fresh UUID.
// Uniqueness is backed by the unique index on trips.trip_code.
func newTripCode() string {
	return "TRP-" + strings.ToUpper(uuid.NewString()[:8])
}

func validEventType(t domain.EventType) bool {
	for _, v := range domain.EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

func joinStatuses(statuses []domain.TripStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
