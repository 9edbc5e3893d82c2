package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fms/backend/internal/domain"
	"github.com/fleetops/fms/backend/internal/repo"
	"github.com/fleetops/fms/backend/testutil"
)

// testTx opens a transaction against the test database; it is rolled back
// when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func testTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// tripFixtures seeds the truck and driver a trip needs and returns a trip
// referencing them. Callers can override individual fields afterwards.
func tripFixtures(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	ctx := context.Background()

	truck, err := repo.NewTruckRepo(tx).Create(ctx, domain.Truck{
		LicensePlate:   "ABC-1234",
		TonnerCapacity: 10000,
		Status:         domain.TruckAvailable,
	})
	require.NoError(t, err, "seed truck")

	driver, err := repo.NewEmployeeRepo(tx).Create(ctx, domain.Employee{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		Role:          domain.RoleDriver,
		LicenseNumber: "N01-23-456789",
		IsActive:      true,
	})
	require.NoError(t, err, "seed driver")

	return domain.Trip{
		TripCode:           "TRP-" + uuid.NewString()[:8],
		TruckID:            &truck.ID,
		DriverID:           &driver.ID,
		StartLocation:      "Manila Hub",
		EndLocation:        "Batangas Port",
		ScheduledStartTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Status:             domain.StatusScheduled,
		LoadType:           domain.LoadDry,
		NetWeight:          8000,
	}
}

func TestTripRepo_Create(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := tripFixtures(t, tx)
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.TripCode, got.TripCode)
	require.NotNil(t, got.TruckID)
	assert.Equal(t, *input.TruckID, *got.TruckID)
	assert.Equal(t, domain.StatusScheduled, got.Status)
	assert.Nil(t, got.ActualStartTime, "a new trip has no actual start time")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetDetailByID_ResolvesPlateAndDriver(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixtures(t, tx))
	require.NoError(t, err)

	got, err := r.GetDetailByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "ABC-1234", got.TruckLicensePlate)
	assert.Equal(t, "Juan Dela Cruz", got.DriverName)
}

func TestTripRepo_UpdateStatus_LatchesStartTimeOnce(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixtures(t, tx))
	require.NoError(t, err)

	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	got, err := r.UpdateStatus(ctx, created.ID, domain.StatusInTransit, &first)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, got.Status)
	require.NotNil(t, got.ActualStartTime)
	assert.True(t, got.ActualStartTime.Equal(first))

	// A nil startedAt (the usual later-transition case) leaves it untouched.
	got, err = r.UpdateStatus(ctx, created.ID, domain.StatusDelayed, nil)
	require.NoError(t, err)
	require.NotNil(t, got.ActualStartTime)
	assert.True(t, got.ActualStartTime.Equal(first))

	// Even a non-nil startedAt cannot overwrite: COALESCE keeps the column.
	second := first.Add(2 * time.Hour)
	got, err = r.UpdateStatus(ctx, created.ID, domain.StatusInTransit, &second)
	require.NoError(t, err)
	require.NotNil(t, got.ActualStartTime)
	assert.True(t, got.ActualStartTime.Equal(first), "actual_start_time must never be overwritten")
}

func TestTripRepo_UpdateStatus_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testTx(t))

	_, err := r.UpdateStatus(context.Background(), uuid.New(), domain.StatusCompleted, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_DriverHasActiveTrip(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := tripFixtures(t, tx)
	created, err := r.Create(ctx, input)
	require.NoError(t, err)

	busy, err := r.DriverHasActiveTrip(ctx, *input.DriverID)
	require.NoError(t, err)
	assert.True(t, busy, "Scheduled counts as active")

	// Completing the trip frees the driver.
	_, err = r.UpdateStatus(ctx, created.ID, domain.StatusCompleted, nil)
	require.NoError(t, err)

	busy, err = r.DriverHasActiveTrip(ctx, *input.DriverID)
	require.NoError(t, err)
	assert.False(t, busy)

	busy, err = r.DriverHasActiveTrip(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, busy, "unknown driver has no trips")
}

func TestTripRepo_ListPaged(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := tripFixtures(t, tx)
	for i := 0; i < 3; i++ {
		trip := input
		trip.TripCode = "TRP-" + uuid.NewString()[:8]
		trip.ScheduledStartTime = input.ScheduledStartTime.Add(time.Duration(i) * time.Hour)
		_, err := r.Create(ctx, trip)
		require.NoError(t, err)
	}

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	// Newest scheduled start first.
	assert.True(t, page[0].ScheduledStartTime.After(page[1].ScheduledStartTime))
}

func TestTripRepo_Delete(t *testing.T) {
	tx := testTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixtures(t, tx))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}
