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

// LocationRepo defines the persistence operations for Locations.
type LocationRepo interface {
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

const locationColumns = `location_id, name, address_line_1, city, latitude, longitude, is_hub`

func (r *pgLocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		INSERT INTO locations (name, address_line_1, city, latitude, longitude, is_hub)
		VALUES (@name, @address_line_1, @city, @latitude, @longitude, @is_hub)
		RETURNING ` + locationColumns

	args := pgx.NamedArgs{
		"name":           loc.Name,
		"address_line_1": loc.AddressLine1,
		"city":           loc.City,
		"latitude":       loc.Latitude,
		"longitude":      loc.Longitude,
		"is_hub":         loc.IsHub,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	q := `SELECT ` + locationColumns + ` FROM locations WHERE location_id = @location_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"location_id": id})
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	q := `SELECT ` + locationColumns + ` FROM locations ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LocationRepo.List: scan: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: rows: %w", err)
	}

	return locations, nil
}

func (r *pgLocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		UPDATE locations
		SET name           = @name,
		    address_line_1 = @address_line_1,
		    city           = @city,
		    latitude       = @latitude,
		    longitude      = @longitude,
		    is_hub         = @is_hub
		WHERE location_id = @location_id
		RETURNING ` + locationColumns

	args := pgx.NamedArgs{
		"location_id":    loc.ID,
		"name":           loc.Name,
		"address_line_1": loc.AddressLine1,
		"city":           loc.City,
		"latitude":       loc.Latitude,
		"longitude":      loc.Longitude,
		"is_hub":         loc.IsHub,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM locations WHERE location_id = @location_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"location_id": id})
	if err != nil {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanLocation maps a single database row into a domain.Location.
func scanLocation(s scanner) (domain.Location, error) {
	var (
		l        domain.Location
		id       pgtype.UUID
		addr     pgtype.Text
		city     pgtype.Text
		lat, lng pgtype.Float8
	)

	err := s.Scan(&id, &l.Name, &addr, &city, &lat, &lng, &l.IsHub)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	if addr.Valid {
		l.AddressLine1 = addr.String
	}
	if city.Valid {
		l.City = city.String
	}
	l.Latitude = floatPtr(lat)
	l.Longitude = floatPtr(lng)

	return l, nil
}
