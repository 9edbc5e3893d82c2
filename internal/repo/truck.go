package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fleetops/fms/backend/internal/domain"
)

// TruckRepo defines the persistence operations for Trucks.
type TruckRepo interface {
	// Create inserts a new truck and returns the persisted record.
	Create(ctx context.Context, truck domain.Truck) (domain.Truck, error)

	// GetByID retrieves a single truck by its UUID primary key.
	// Returns domain.ErrNotFound if no truck with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error)

	// List returns all trucks ordered by license plate.
	List(ctx context.Context) ([]domain.Truck, error)

	// Update overwrites the mutable fields of an existing truck and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, truck domain.Truck) (domain.Truck, error)

	// Delete removes a truck by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTruckRepo is the Postgres implementation of TruckRepo.
type pgTruckRepo struct {
	db db
}

// NewTruckRepo constructs a TruckRepo backed by the provided db connection.
func NewTruckRepo(db db) TruckRepo {
	return &pgTruckRepo{db: db}
}

const truckColumns = `truck_id, license_plate, vin, tonner_capacity, status, assigned_driver`

func (r *pgTruckRepo) Create(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	const q = `
		INSERT INTO trucks (license_plate, vin, tonner_capacity, status, assigned_driver)
		VALUES (@license_plate, @vin, @tonner_capacity, @status, @assigned_driver)
		RETURNING ` + truckColumns

	args := pgx.NamedArgs{
		"license_plate":   truck.LicensePlate,
		"vin":             truck.VIN,
		"tonner_capacity": truck.TonnerCapacity,
		"status":          truck.Status,
		"assigned_driver": truck.AssignedDriver,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTruckRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error) {
	q := `SELECT ` + truckColumns + ` FROM trucks WHERE truck_id = @truck_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"truck_id": id})
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTruckRepo) List(ctx context.Context) ([]domain.Truck, error) {
	q := `SELECT ` + truckColumns + ` FROM trucks ORDER BY license_plate`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TruckRepo.List: %w", err)
	}
	defer rows.Close()

	var trucks []domain.Truck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TruckRepo.List: scan: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TruckRepo.List: rows: %w", err)
	}

	return trucks, nil
}

func (r *pgTruckRepo) Update(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	const q = `
		UPDATE trucks
		SET license_plate   = @license_plate,
		    vin             = @vin,
		    tonner_capacity = @tonner_capacity,
		    status          = @status,
		    assigned_driver = @assigned_driver
		WHERE truck_id = @truck_id
		RETURNING ` + truckColumns

	args := pgx.NamedArgs{
		"truck_id":        truck.ID,
		"license_plate":   truck.LicensePlate,
		"vin":             truck.VIN,
		"tonner_capacity": truck.TonnerCapacity,
		"status":          truck.Status,
		"assigned_driver": truck.AssignedDriver,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTruckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trucks WHERE truck_id = @truck_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"truck_id": id})
	if err != nil {
		return fmt.Errorf("repo.TruckRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TruckRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTruck maps a single database row into a domain.Truck.
func scanTruck(s scanner) (domain.Truck, error) {
	var (
		t          domain.Truck
		id, driver pgtype.UUID
	)

	err := s.Scan(&id, &t.LicensePlate, &t.VIN, &t.TonnerCapacity, &t.Status, &driver)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Truck{}, domain.ErrNotFound
		}
		return domain.Truck{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.AssignedDriver = uuidPtr(driver)

	return t, nil
}
