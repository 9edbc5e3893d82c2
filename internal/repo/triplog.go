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

// TripLogRepo defines the persistence operations for the append-only trip
// logging tables (trip_events and trip_fuels). Rows are only ever inserted
// and listed — there is no update or delete path.
type TripLogRepo interface {
	// AddEvent appends a milestone event to a trip's log.
	AddEvent(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error)

	// ListEvents returns all events for a trip ordered by event_timestamp.
	ListEvents(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error)

	// AddFuel appends a fuel purchase record to a trip's log.
	AddFuel(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error)

	// ListFuel returns all fuel records for a trip ordered by created_at.
	ListFuel(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error)
}

// pgTripLogRepo is the Postgres implementation of TripLogRepo.
type pgTripLogRepo struct {
	db db
}

// NewTripLogRepo constructs a TripLogRepo backed by the provided db connection.
func NewTripLogRepo(db db) TripLogRepo {
	return &pgTripLogRepo{db: db}
}

func (r *pgTripLogRepo) AddEvent(ctx context.Context, ev domain.TripEvent) (domain.TripEvent, error) {
	const q = `
		INSERT INTO trip_events (trip_id, encoder_id, event_type, event_timestamp, document_no)
		VALUES (@trip_id, @encoder_id, @event_type, @event_timestamp, @document_no)
		RETURNING event_id, trip_id, encoder_id, event_type, event_timestamp, document_no`

	args := pgx.NamedArgs{
		"trip_id":         ev.TripID,
		"encoder_id":      ev.EncoderID,
		"event_type":      ev.EventType,
		"event_timestamp": ev.Timestamp,
		"document_no":     ev.DocumentNo,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTripEvent(row)
	if err != nil {
		return domain.TripEvent{}, fmt.Errorf("repo.TripLogRepo.AddEvent: %w", err)
	}
	return result, nil
}

func (r *pgTripLogRepo) ListEvents(ctx context.Context, tripID uuid.UUID) ([]domain.TripEvent, error) {
	const q = `
		SELECT event_id, trip_id, encoder_id, event_type, event_timestamp, document_no
		FROM trip_events
		WHERE trip_id = @trip_id
		ORDER BY event_timestamp`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripLogRepo.ListEvents: %w", err)
	}
	defer rows.Close()

	var events []domain.TripEvent
	for rows.Next() {
		ev, err := scanTripEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripLogRepo.ListEvents: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripLogRepo.ListEvents: rows: %w", err)
	}

	return events, nil
}

func (r *pgTripLogRepo) AddFuel(ctx context.Context, f domain.TripFuel) (domain.TripFuel, error) {
	const q = `
		INSERT INTO trip_fuels (trip_id, encoder_id, fuel_ref_no, liters, total_amount)
		VALUES (@trip_id, @encoder_id, @fuel_ref_no, @liters, @total_amount)
		RETURNING fuel_id, trip_id, encoder_id, fuel_ref_no, liters, total_amount, created_at`

	args := pgx.NamedArgs{
		"trip_id":      f.TripID,
		"encoder_id":   f.EncoderID,
		"fuel_ref_no":  f.FuelRefNo,
		"liters":       f.Liters,
		"total_amount": f.TotalAmount,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTripFuel(row)
	if err != nil {
		return domain.TripFuel{}, fmt.Errorf("repo.TripLogRepo.AddFuel: %w", err)
	}
	return result, nil
}

func (r *pgTripLogRepo) ListFuel(ctx context.Context, tripID uuid.UUID) ([]domain.TripFuel, error) {
	const q = `
		SELECT fuel_id, trip_id, encoder_id, fuel_ref_no, liters, total_amount, created_at
		FROM trip_fuels
		WHERE trip_id = @trip_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripLogRepo.ListFuel: %w", err)
	}
	defer rows.Close()

	var fuels []domain.TripFuel
	for rows.Next() {
		f, err := scanTripFuel(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripLogRepo.ListFuel: scan: %w", err)
		}
		fuels = append(fuels, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripLogRepo.ListFuel: rows: %w", err)
	}

	return fuels, nil
}

// scanTripEvent maps a single database row into a domain.TripEvent.
func scanTripEvent(s scanner) (domain.TripEvent, error) {
	var (
		ev                  domain.TripEvent
		id, tripID, encoder pgtype.UUID
		docNo               pgtype.Text
	)

	err := s.Scan(&id, &tripID, &encoder, &ev.EventType, &ev.Timestamp, &docNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripEvent{}, domain.ErrNotFound
		}
		return domain.TripEvent{}, err
	}

	ev.ID = uuid.UUID(id.Bytes)
	ev.TripID = uuid.UUID(tripID.Bytes)
	ev.EncoderID = uuid.UUID(encoder.Bytes)
	if docNo.Valid {
		ev.DocumentNo = docNo.String
	}

	return ev, nil
}

// scanTripFuel maps a single database row into a domain.TripFuel.
func scanTripFuel(s scanner) (domain.TripFuel, error) {
	var (
		f                   domain.TripFuel
		id, tripID, encoder pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &encoder, &f.FuelRefNo, &f.Liters, &f.TotalAmount, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripFuel{}, domain.ErrNotFound
		}
		return domain.TripFuel{}, err
	}

	f.ID = uuid.UUID(id.Bytes)
	f.TripID = uuid.UUID(tripID.Bytes)
	f.EncoderID = uuid.UUID(encoder.Bytes)

	return f, nil
}
