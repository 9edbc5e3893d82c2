package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
	"github.com/fleetops/fms/backend/internal/service"
)

type mockEmployeeRepo struct {
	create  func(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Employee, error)
	list    func(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error)
	update  func(ctx context.Context, emp domain.Employee) (domain.Employee, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEmployeeRepo) Create(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	return m.create(ctx, emp)
}
func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	return m.getByID(ctx, id)
}
func (m *mockEmployeeRepo) List(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error) {
	return m.list(ctx, role)
}
func (m *mockEmployeeRepo) Update(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	return m.update(ctx, emp)
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.EmployeeRepo = (*mockEmployeeRepo)(nil)

func TestEmployeeService_Create_Valid(t *testing.T) {
	r := &mockEmployeeRepo{
		create: func(_ context.Context, e domain.Employee) (domain.Employee, error) { return e, nil },
	}
	svc := service.NewEmployeeService(r)

	got, err := svc.Create(context.Background(), domain.Employee{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		Role:          domain.RoleDriver,
		LicenseNumber: "N01-23-456789",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, got.Role)
}

func TestEmployeeService_Create_UnknownRole(t *testing.T) {
	svc := service.NewEmployeeService(&mockEmployeeRepo{})

	_, err := svc.Create(context.Background(), domain.Employee{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Role:      "Mechanic",
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "role", fe.Field)
}

func TestEmployeeService_Create_MissingName(t *testing.T) {
	svc := service.NewEmployeeService(&mockEmployeeRepo{})

	_, err := svc.Create(context.Background(), domain.Employee{Role: domain.RoleHelper})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmployeeService_List_FilterByRole(t *testing.T) {
	var gotRole domain.EmployeeRole
	r := &mockEmployeeRepo{
		list: func(_ context.Context, role domain.EmployeeRole) ([]domain.Employee, error) {
			gotRole = role
			return []domain.Employee{{Role: role}}, nil
		},
	}
	svc := service.NewEmployeeService(r)

	got, err := svc.List(context.Background(), domain.RoleDriver)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, gotRole)
	assert.Len(t, got, 1)
}

func TestEmployeeService_List_UnknownRoleFilter(t *testing.T) {
	svc := service.NewEmployeeService(&mockEmployeeRepo{})

	_, err := svc.List(context.Background(), "Mechanic")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
