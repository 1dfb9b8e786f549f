package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
	"github.com/pmartell/driveledger/internal/service"
)

// mockVehicleRepo is a hand-written test double for repo.VehicleRepo.
type mockVehicleRepo struct {
	create       func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	listByDriver func(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error)
	update       func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	setDefault   func(ctx context.Context, driverID, vehicleID uuid.UUID) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, vehicle)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleRepo) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error) {
	return m.listByDriver(ctx, driverID)
}
func (m *mockVehicleRepo) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.update(ctx, vehicle)
}
func (m *mockVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockVehicleRepo) SetDefault(ctx context.Context, driverID, vehicleID uuid.UUID) error {
	return m.setDefault(ctx, driverID, vehicleID)
}

var _ repo.VehicleRepo = (*mockVehicleRepo)(nil)

func existingDriverRepo(id uuid.UUID) *mockDriverRepo {
	return &mockDriverRepo{
		getByID: func(_ context.Context, got uuid.UUID) (domain.Driver, error) {
			if got != id {
				return domain.Driver{}, domain.ErrNotFound
			}
			return domain.Driver{ID: id, Name: "Priya"}, nil
		},
	}
}

func TestVehicleService_Create_UnknownDriver(t *testing.T) {
	svc := service.NewVehicleService(&mockVehicleRepo{}, existingDriverRepo(uuid.New()))

	_, err := svc.Create(context.Background(), domain.Vehicle{
		DriverID: uuid.New(), // not the driver the repo knows
		Name:     "Prius",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleService_Create_DefaultPromotedViaSetDefault(t *testing.T) {
	driverID := uuid.New()
	vehicleID := uuid.New()

	var promoted uuid.UUID
	vehicles := &mockVehicleRepo{
		create: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			// The insert itself must never carry the default flag; the
			// promotion goes through SetDefault so the old default is
			// cleared in the same statement.
			assert.False(t, v.IsDefault)
			v.ID = vehicleID
			return v, nil
		},
		setDefault: func(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
			promoted = id
			return nil
		},
	}
	svc := service.NewVehicleService(vehicles, existingDriverRepo(driverID))

	got, err := svc.Create(context.Background(), domain.Vehicle{
		DriverID:  driverID,
		Name:      "Prius",
		IsDefault: true,
	})

	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, vehicleID, promoted)
}

func TestVehicleService_SetDefault_RejectsForeignVehicle(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	vehicleID := uuid.New()

	svc := service.NewVehicleService(&mockVehicleRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{ID: vehicleID, DriverID: owner, Name: "Prius"}, nil
		},
		setDefault: func(_ context.Context, _, _ uuid.UUID) error {
			t.Fatal("SetDefault must not reach the repo for a foreign vehicle")
			return nil
		},
	}, existingDriverRepo(owner))

	err := svc.SetDefault(context.Background(), other, vehicleID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVehicleService_SetDefault_OwnVehicle(t *testing.T) {
	owner := uuid.New()
	vehicleID := uuid.New()

	called := false
	svc := service.NewVehicleService(&mockVehicleRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Vehicle, error) {
			return domain.Vehicle{ID: vehicleID, DriverID: owner, Name: "Prius"}, nil
		},
		setDefault: func(_ context.Context, driverID, id uuid.UUID) error {
			called = true
			assert.Equal(t, owner, driverID)
			assert.Equal(t, vehicleID, id)
			return nil
		},
	}, existingDriverRepo(owner))

	require.NoError(t, svc.SetDefault(context.Background(), owner, vehicleID))
	assert.True(t, called)
}

func TestVehicleService_Create_MissingName(t *testing.T) {
	svc := service.NewVehicleService(&mockVehicleRepo{}, existingDriverRepo(uuid.New()))

	_, err := svc.Create(context.Background(), domain.Vehicle{DriverID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
