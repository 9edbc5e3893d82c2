package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// LocationService implements named pickup/dropoff location management.
type LocationService struct {
	locations repo.LocationRepo
}

// NewLocationService constructs a LocationService backed by the provided repo.
func NewLocationService(locations repo.LocationRepo) *LocationService {
	return &LocationService{locations: locations}
}

// Create registers a new location.
func (s *LocationService) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.Name == "" {
		return domain.Location{}, &domain.FieldError{Field: "name", Message: "A location name is required."}
	}

	result, err := s.locations.Create(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single location by id.
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	result, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Get: %w", err)
	}
	return result, nil
}

// List returns every location ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.List: %w", err)
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	return locations, nil
}

// Update overwrites a location's mutable fields.
func (s *LocationService) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.Name == "" {
		return domain.Location{}, &domain.FieldError{Field: "name", Message: "A location name is required."}
	}
	result, err := s.locations.Update(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a location.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LocationService.Delete: %w", err)
	}
	return nil
}
