package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// CustomerService implements customer account management.
type CustomerService struct {
	customers repo.CustomerRepo
}

// NewCustomerService constructs a CustomerService backed by the provided repo.
func NewCustomerService(customers repo.CustomerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create registers a new customer.
func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	if c.Name == "" {
		return domain.Customer{}, &domain.FieldError{Field: "name", Message: "A customer name is required."}
	}

	result, err := s.customers.Create(ctx, c)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single customer by id.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	result, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Get: %w", err)
	}
	return result, nil
}

// List returns every customer.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.List: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// Update overwrites a customer's mutable fields.
func (s *CustomerService) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	if c.Name == "" {
		return domain.Customer{}, &domain.FieldError{Field: "name", Message: "A customer name is required."}
	}
	result, err := s.customers.Update(ctx, c)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	return nil
}
