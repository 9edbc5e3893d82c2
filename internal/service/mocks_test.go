package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/auth"
	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// Hand-written test doubles shared by the service tests. Each method is a
// function field — set only the ones your test needs; unset methods panic,
// which catches tests exercising paths they did not mean to.

type mockTripRepo struct {
	create              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getDetailByID       func(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	listPaged           func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete              func(ctx context.Context, id uuid.UUID) error
	driverHasActiveTrip func(ctx context.Context, driverID uuid.UUID) (bool, error)
	updateStatus        func(ctx context.Context, id uuid.UUID, status domain.TripStatus, startedAt *time.Time) (domain.TripDetail, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetDetailByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	return m.getDetailByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) DriverHasActiveTrip(ctx context.Context, driverID uuid.UUID) (bool, error) {
	return m.driverHasActiveTrip(ctx, driverID)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus, startedAt *time.Time) (domain.TripDetail, error) {
	return m.updateStatus(ctx, id, status, startedAt)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockTruckRepo struct {
	create  func(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Truck, error)
	list    func(ctx context.Context) ([]domain.Truck, error)
	update  func(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTruckRepo) Create(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	return m.create(ctx, truck)
}
func (m *mockTruckRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error) {
	return m.getByID(ctx, id)
}
func (m *mockTruckRepo) List(ctx context.Context) ([]domain.Truck, error) {
	return m.list(ctx)
}
func (m *mockTruckRepo) Update(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	return m.update(ctx, truck)
}
func (m *mockTruckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TruckRepo = (*mockTruckRepo)(nil)

type mockTripLogRepo struct {
	addEvent   func(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error)
	listEvents func(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error)
	addFuel    func(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error)
	listFuel   func(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error)
}

func (m *mockTripLogRepo) AddEvent(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error) {
	return m.addEvent(ctx, ev)
}
func (m *mockTripLogRepo) ListEvents(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error) {
	return m.listEvents(ctx, tripID)
}
func (m *mockTripLogRepo) AddFuel(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error) {
	return m.addFuel(ctx, f)
}
func (m *mockTripLogRepo) ListFuel(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error) {
	return m.listFuel(ctx, tripID)
}

var _ repo.TripLogRepo = (*mockTripLogRepo)(nil)

// stubAuthz answers the two authorization questions with fixed booleans.
type stubAuthz struct {
	dispatcher bool
	driver     bool
}

func (s *stubAuthz) IsSuperAdminOrDispatcher(domain.Actor) bool { return s.dispatcher }
func (s *stubAuthz) IsAssignedDriver(domain.Actor, domain.Trip) bool {
	return s.driver
}

var _ auth.Provider = (*stubAuthz)(nil)

// publishCall records one PublishStatus invocation.
type publishCall struct {
	tripID   uuid.UUID
	status   domain.TripStatus
	lat, lng float64
	at       time.Time
}

// capturePublisher records broadcasts so tests can assert on what was
// (or was not) published.
type capturePublisher struct {
	mu    sync.Mutex
	calls []publishCall
}

func (p *capturePublisher) PublishStatus(tripID uuid.UUID, status domain.TripStatus, lat, lng float64, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, publishCall{tripID: tripID, status: status, lat: lat, lng: lng, at: at})
}

func (p *capturePublisher) published() []publishCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishCall(nil), p.calls...)
}
