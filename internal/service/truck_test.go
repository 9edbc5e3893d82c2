package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/service"
)

func echoTruckRepo() *mockTruckRepo {
	return &mockTruckRepo{
		create: func(_ context.Context, tr domain.Truck) (domain.Truck, error) { return tr, nil },
		update: func(_ context.Context, tr domain.Truck) (domain.Truck, error) { return tr, nil },
	}
}

func TestTruckService_Create_DefaultsToAvailable(t *testing.T) {
	svc := service.NewTruckService(echoTruckRepo())

	got, err := svc.Create(context.Background(), domain.Truck{
		LicensePlate:   "XYZ-9876",
		TonnerCapacity: 12000,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TruckAvailable, got.Status)
}

func TestTruckService_Create_MissingPlate(t *testing.T) {
	svc := service.NewTruckService(echoTruckRepo())

	_, err := svc.Create(context.Background(), domain.Truck{TonnerCapacity: 12000})

	require.ErrorIs(t, err, domain.ErrValidation)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "license_plate", fe.Field)
}

func TestTruckService_Create_NonPositiveCapacity(t *testing.T) {
	svc := service.NewTruckService(echoTruckRepo())

	_, err := svc.Create(context.Background(), domain.Truck{LicensePlate: "XYZ-9876"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTruckService_Create_UnknownStatus(t *testing.T) {
	svc := service.NewTruckService(echoTruckRepo())

	_, err := svc.Create(context.Background(), domain.Truck{
		LicensePlate:   "XYZ-9876",
		TonnerCapacity: 12000,
		Status:         "Broken",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTruckService_Update_IntoMaintenance(t *testing.T) {
	svc := service.NewTruckService(echoTruckRepo())

	got, err := svc.Update(context.Background(), domain.Truck{
		ID:             uuid.New(),
		LicensePlate:   "XYZ-9876",
		TonnerCapacity: 12000,
		Status:         domain.TruckMaintenance,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TruckMaintenance, got.Status)
}

func TestTruckService_Get_NotFound(t *testing.T) {
	r := &mockTruckRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Truck, error) {
			return domain.Truck{}, domain.ErrNotFound
		},
	}
	svc := service.NewTruckService(r)

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTruckService_List_Empty(t *testing.T) {
	r := &mockTruckRepo{
		list: func(_ context.Context) ([]domain.Truck, error) { return nil, nil },
	}
	svc := service.NewTruckService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
