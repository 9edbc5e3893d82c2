// Package repo contains all database access logic for the fleet management API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fleetops/fms/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetDetailByID retrieves a trip with its truck plate and driver name
	// resolved. Returns domain.ErrNotFound if no trip with that ID exists.
	GetDetailByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)

	// ListPaged returns one page of trips ordered by scheduled_start_time
	// descending, plus the total row count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the schedulable fields of an existing trip and
	// returns the updated record. Status and actual timestamps are not
	// touched — those change only through UpdateStatus.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DriverHasActiveTrip reports whether any trip assigned to the driver is
	// currently in an active status (Scheduled or In Transit).
	DriverHasActiveTrip(ctx context.Context, driverID uuid.UUID) (bool, error)

	// UpdateStatus sets the trip status in a single atomic write. When
	// startedAt is non-nil it is latched into actual_start_time only if that
	// column is still NULL — an already-set start time is never overwritten.
	// No other trip fields are modified. Returns the updated detail
	// projection, or domain.ErrNotFound if the trip does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus, startedAt *time.Time) (domain.TripDetail, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the canonical select list shared by every trip query.
const tripColumns = `trip_id, trip_code, customer_id, truck_id, driver_id,
	helper1_id, helper2_id, start_location, end_location,
	scheduled_start_time, actual_start_time, actual_end_time,
	status, load_type, net_weight, estimated_fuel_cost, distance_km,
	created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (trip_code, customer_id, truck_id, driver_id,
			helper1_id, helper2_id, start_location, end_location,
			scheduled_start_time, status, load_type, net_weight)
		VALUES (@trip_code, @customer_id, @truck_id, @driver_id,
			@helper1_id, @helper2_id, @start_location, @end_location,
			@scheduled_start_time, @status, @load_type, @net_weight)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"trip_code":            trip.TripCode,
		"customer_id":          trip.CustomerID, // nil becomes NULL
		"truck_id":             trip.TruckID,
		"driver_id":            trip.DriverID,
		"helper1_id":           trip.Helper1ID,
		"helper2_id":           trip.Helper2ID,
		"start_location":       trip.StartLocation,
		"end_location":         trip.EndLocation,
		"scheduled_start_time": trip.ScheduledStartTime,
		"status":               trip.Status,
		"load_type":            trip.LoadType,
		"net_weight":           trip.NetWeight,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetDetailByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	q := `
		SELECT t.trip_id, t.trip_code, t.customer_id, t.truck_id, t.driver_id,
			t.helper1_id, t.helper2_id, t.start_location, t.end_location,
			t.scheduled_start_time, t.actual_start_time, t.actual_end_time,
			t.status, t.load_type, t.net_weight, t.estimated_fuel_cost, t.distance_km,
			t.created_at, t.updated_at,
			COALESCE(k.license_plate, ''),
			COALESCE(e.first_name || ' ' || e.last_name, '')
		FROM trips t
		LEFT JOIN trucks k ON k.truck_id = t.truck_id
		LEFT JOIN employees e ON e.employee_id = t.driver_id
		WHERE t.trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": id})
	result, err := scanTripDetail(row)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetDetailByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY scheduled_start_time DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET customer_id          = @customer_id,
		    truck_id             = @truck_id,
		    driver_id            = @driver_id,
		    helper1_id           = @helper1_id,
		    helper2_id           = @helper2_id,
		    start_location       = @start_location,
		    end_location         = @end_location,
		    scheduled_start_time = @scheduled_start_time,
		    load_type            = @load_type,
		    net_weight           = @net_weight,
		    updated_at           = now()
		WHERE trip_id = @trip_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"trip_id":              trip.ID,
		"customer_id":          trip.CustomerID,
		"truck_id":             trip.TruckID,
		"driver_id":            trip.DriverID,
		"helper1_id":           trip.Helper1ID,
		"helper2_id":           trip.Helper2ID,
		"start_location":       trip.StartLocation,
		"end_location":         trip.EndLocation,
		"scheduled_start_time": trip.ScheduledStartTime,
		"load_type":            trip.LoadType,
		"net_weight":           trip.NetWeight,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// DriverHasActiveTrip is an existence check, not a time-range overlap check:
// a driver with any trip in an active status is blocked from new assignments
// regardless of how far apart the schedules are.
func (r *pgTripRepo) DriverHasActiveTrip(ctx context.Context, driverID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM trips
			WHERE driver_id = @driver_id AND status = ANY(@statuses))`

	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"driver_id": driverID, "statuses": statuses}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.DriverHasActiveTrip: %w", err)
	}
	return exists, nil
}

// UpdateStatus writes status and (conditionally) actual_start_time in one
// UPDATE. The COALESCE keeps an existing start time: passing startedAt on a
// trip that already departed leaves the original timestamp in place.
func (r *pgTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus, startedAt *time.Time) (domain.TripDetail, error) {
	const q = `
		UPDATE trips
		SET status            = @status,
		    actual_start_time = COALESCE(actual_start_time, @started_at),
		    updated_at        = now()
		WHERE trip_id = @trip_id
		RETURNING trip_id`

	args := pgx.NamedArgs{
		"trip_id":    id,
		"status":     status,
		"started_at": startedAt, // nil leaves actual_start_time unchanged
	}

	var updated pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", domain.ErrNotFound)
		}
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}

	return r.GetDetailByID(ctx, id)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable column conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                                        domain.Trip
		id, customer, truck, driver, hp1, hp2    pgtype.UUID
		startedAt, endedAt                       pgtype.Timestamptz
		fuelCost, distance                       pgtype.Float8
	)

	err := s.Scan(&id, &t.TripCode, &customer, &truck, &driver, &hp1, &hp2,
		&t.StartLocation, &t.EndLocation,
		&t.ScheduledStartTime, &startedAt, &endedAt,
		&t.Status, &t.LoadType, &t.NetWeight, &fuelCost, &distance,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.CustomerID = uuidPtr(customer)
	t.TruckID = uuidPtr(truck)
	t.DriverID = uuidPtr(driver)
	t.Helper1ID = uuidPtr(hp1)
	t.Helper2ID = uuidPtr(hp2)
	t.ActualStartTime = timePtr(startedAt)
	t.ActualEndTime = timePtr(endedAt)
	t.EstimatedFuelCost = floatPtr(fuelCost)
	t.DistanceKM = floatPtr(distance)

	return t, nil
}

// scanTripDetail maps a joined row (trip columns plus truck plate and driver
// name) into a domain.TripDetail.
func scanTripDetail(s scanner) (domain.TripDetail, error) {
	var (
		d                                     domain.TripDetail
		id, customer, truck, driver, hp1, hp2 pgtype.UUID
		startedAt, endedAt                    pgtype.Timestamptz
		fuelCost, distance                    pgtype.Float8
	)

	err := s.Scan(&id, &d.TripCode, &customer, &truck, &driver, &hp1, &hp2,
		&d.StartLocation, &d.EndLocation,
		&d.ScheduledStartTime, &startedAt, &endedAt,
		&d.Status, &d.LoadType, &d.NetWeight, &fuelCost, &distance,
		&d.CreatedAt, &d.UpdatedAt,
		&d.TruckLicensePlate, &d.DriverName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripDetail{}, domain.ErrNotFound
		}
		return domain.TripDetail{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.CustomerID = uuidPtr(customer)
	d.TruckID = uuidPtr(truck)
	d.DriverID = uuidPtr(driver)
	d.Helper1ID = uuidPtr(hp1)
	d.Helper2ID = uuidPtr(hp2)
	d.ActualStartTime = timePtr(startedAt)
	d.ActualEndTime = timePtr(endedAt)
	d.EstimatedFuelCost = floatPtr(fuelCost)
	d.DistanceKM = floatPtr(distance)

	return d, nil
}

func uuidPtr(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}

func timePtr(v pgtype.Timestamptz) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func floatPtr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
