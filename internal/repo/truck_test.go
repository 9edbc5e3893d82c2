package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
)

func TestTruckRepo_CreateAndGet(t *testing.T) {
	r := repo.NewTruckRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Truck{
		LicensePlate:   "DEF-5678",
		VIN:            "1FTSW21P34ED12345",
		TonnerCapacity: 15000,
		Status:         domain.TruckAvailable,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DEF-5678", got.LicensePlate)
	assert.Equal(t, "1FTSW21P34ED12345", got.VIN)
	assert.Equal(t, 15000, got.TonnerCapacity)
}

func TestTruckRepo_Update_StatusTransition(t *testing.T) {
	r := repo.NewTruckRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Truck{
		LicensePlate:   "GHI-9012",
		TonnerCapacity: 8000,
		Status:         domain.TruckAvailable,
	})
	require.NoError(t, err)

	created.Status = domain.TruckMaintenance
	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, domain.TruckMaintenance, updated.Status)
}

func TestTruckRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTruckRepo(testTx(t))

	_, err := r.Update(context.Background(), domain.Truck{
		ID:             uuid.New(),
		LicensePlate:   "JKL-3456",
		TonnerCapacity: 8000,
		Status:         domain.TruckAvailable,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTruckRepo_Delete(t *testing.T) {
	r := repo.NewTruckRepo(testTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Truck{
		LicensePlate:   "MNO-7890",
		TonnerCapacity: 8000,
		Status:         domain.TruckAvailable,
	})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
