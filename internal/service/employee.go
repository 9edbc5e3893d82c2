package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

// EmployeeService implements personnel management for drivers, helpers,
// and encoders.
type EmployeeService struct {
	employees repo.EmployeeRepo
}

// NewEmployeeService constructs an EmployeeService backed by the provided repo.
func NewEmployeeService(employees repo.EmployeeRepo) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// Create registers a new employee.
func (s *EmployeeService) Create(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	if emp.FirstName == "" || emp.LastName == "" {
		return domain.Employee{}, &domain.FieldError{Field: "name", Message: "First and last name are required."}
	}
	if !validRole(emp.Role) {
		return domain.Employee{}, &domain.FieldError{Field: "role", Message: "Employee role is not recognized."}
	}

	result, err := s.employees.Create(ctx, emp)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Create: %w", err)
	}
	return result, nil
}

// Get returns a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	result, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Get: %w", err)
	}
	return result, nil
}

// List returns employees, optionally filtered by role (empty means all).
// Always returns a non-nil slice so callers can safely range over it.
func (s *EmployeeService) List(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error) {
	if role != "" && !validRole(role) {
		return nil, &domain.FieldError{Field: "role", Message: "Employee role is not recognized."}
	}
	employees, err := s.employees.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("service.EmployeeService.List: %w", err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

// Update overwrites an employee's mutable fields.
func (s *EmployeeService) Update(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	if !validRole(emp.Role) {
		return domain.Employee{}, &domain.FieldError{Field: "role", Message: "Employee role is not recognized."}
	}
	result, err := s.employees.Update(ctx, emp)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EmployeeService.Delete: %w", err)
	}
	return nil
}

func validRole(role domain.EmployeeRole) bool {
	switch role {
	case domain.RoleDriver, domain.RoleHelper, domain.RoleEncoder:
		return true
	}
	return false
}
