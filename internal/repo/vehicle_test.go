package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

func TestVehicleRepo_SetDefault_MovesTheFlag(t *testing.T) {
	tx := testTx(t)
	r := repo.NewVehicleRepo(tx)
	ctx := context.Background()
	driver := createTestDriver(t, tx)

	first, err := r.Create(ctx, domain.Vehicle{DriverID: driver.ID, Name: "Prius", IsDefault: true})
	require.NoError(t, err)
	second, err := r.Create(ctx, domain.Vehicle{DriverID: driver.ID, Name: "Civic"})
	require.NoError(t, err)

	require.NoError(t, r.SetDefault(ctx, driver.ID, second.ID))

	vehicles, err := r.ListByDriver(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	// Default sorts first.
	assert.Equal(t, second.ID, vehicles[0].ID)
	assert.True(t, vehicles[0].IsDefault)
	assert.False(t, vehicles[1].IsDefault, "old default must be unset")
	assert.Equal(t, first.ID, vehicles[1].ID)
}

func TestVehicleRepo_SetDefault_ForeignVehicle_NotFound(t *testing.T) {
	tx := testTx(t)
	r := repo.NewVehicleRepo(tx)
	ctx := context.Background()
	driver := createTestDriver(t, tx)

	err := r.SetDefault(ctx, driver.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_DeleteNullsTripReference(t *testing.T) {
	tx := testTx(t)
	vehicles := repo.NewVehicleRepo(tx)
	trips := repo.NewTripRepo(tx)
	ctx := context.Background()
	driver := createTestDriver(t, tx)

	vehicle, err := vehicles.Create(ctx, domain.Vehicle{DriverID: driver.ID, Name: "Prius"})
	require.NoError(t, err)

	trip := testTrip(driver.ID, vehicle.CreatedAt)
	trip.VehicleID = &vehicle.ID
	created, err := trips.Create(ctx, trip)
	require.NoError(t, err)

	require.NoError(t, vehicles.Delete(ctx, vehicle.ID))

	got, err := trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VehicleID, "FK is ON DELETE SET NULL")
}
