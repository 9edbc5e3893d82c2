package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// TruckService implements fleet vehicle management.
type TruckService struct {
	trucks repo.TruckRepo
}

// NewTruckService constructs a TruckService backed by the provided repo.
func NewTruckService(trucks repo.TruckRepo) *TruckService {
	return &TruckService{trucks: trucks}
}

// Create registers a new truck. Plate and capacity are required; status
// defaults to Available when omitted.
func (s *TruckService) Create(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	if truck.LicensePlate == "" {
		return domain.Truck{}, &domain.FieldError{Field: "license_plate", Message: "A license plate is required."}
	}
	if truck.TonnerCapacity <= 0 {
		return domain.Truck{}, &domain.FieldError{Field: "tonner_capacity", Message: "Truck capacity must be a positive amount."}
	}
	if truck.Status == "" {
		truck.Status = domain.TruckAvailable
	}
	if !validTruckStatus(truck.Status) {
		return domain.Truck{}, &domain.FieldError{Field: "status", Message: "Truck status is not recognized."}
	}

	result, err := s.trucks.Create(ctx, truck)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single truck by id.
func (s *TruckService) Get(ctx context.Context, id uuid.UUID) (domain.Truck, error) {
	result, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.Get: %w", err)
	}
	return result, nil
}

// List returns every registered truck.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TruckService) List(ctx context.Context) ([]domain.Truck, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TruckService.List: %w", err)
	}
	if trucks == nil {
		trucks = []domain.Truck{}
	}
	return trucks, nil
}

// Update overwrites a truck's mutable fields. Moving a truck into
// Maintenance does not touch trips already scheduled on it — the
// maintenance gate applies only to new trip creation.
func (s *TruckService) Update(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	if !validTruckStatus(truck.Status) {
		return domain.Truck{}, &domain.FieldError{Field: "status", Message: "Truck status is not recognized."}
	}
	result, err := s.trucks.Update(ctx, truck)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a truck.
func (s *TruckService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trucks.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TruckService.Delete: %w", err)
	}
	return nil
}

func validTruckStatus(st domain.TruckStatus) bool {
	switch st {
	case domain.TruckAvailable, domain.TruckInUse, domain.TruckMaintenance:
		return true
	}
	return false
}
