package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
	"github.com/pmartell/driveledger/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByDrivers func(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error)
	listInRange   func(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Trip, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error) {
	return m.listByDrivers(ctx, driverIDs, limit)
}
func (m *mockTripRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Trip, error) {
	return m.listInRange(ctx, driverIDs, start, endExclusive)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func validServiceTrip() domain.Trip {
	return domain.Trip{
		DriverID:   uuid.New(),
		OccurredAt: time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC),
		Platform:   "Uber",
		Fare:       21.50,
		Tip:        4.00,
		Miles:      12.3,
	}
}

func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, tr domain.Trip) (domain.Trip, error) { return tr, nil },
		update: func(_ context.Context, tr domain.Trip) (domain.Trip, error) { return tr, nil },
	}
}

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	got, err := svc.Create(context.Background(), validServiceTrip())

	require.NoError(t, err)
	assert.Equal(t, "Uber", got.Platform)
	assert.InDelta(t, 25.50, got.Income(), 1e-9)
}

func TestTripService_Create_MissingDriver(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validServiceTrip()
	trip.DriverID = uuid.Nil

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_MissingOccurredAt(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validServiceTrip()
	trip.OccurredAt = time.Time{}

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_NegativeAmounts(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	for _, mutate := range []func(*domain.Trip){
		func(tr *domain.Trip) { tr.Fare = -1 },
		func(tr *domain.Trip) { tr.Tip = -0.01 },
		func(tr *domain.Trip) { tr.Bonus = -5 },
		func(tr *domain.Trip) { tr.Miles = -2 },
	} {
		trip := validServiceTrip()
		mutate(&trip)

		_, err := svc.Create(context.Background(), trip)

		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestTripService_Create_NegativeDuration(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validServiceTrip()
	minutes := -30
	trip.DurationMinutes = &minutes

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_List_NilBecomesEmpty(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		listByDrivers: func(_ context.Context, _ []uuid.UUID, _ int) ([]domain.Trip, error) {
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), nil, 50)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_Update_ValidatesLikeCreate(t *testing.T) {
	svc := service.NewTripService(echoTripRepo())

	trip := validServiceTrip()
	trip.ID = uuid.New()
	trip.Fare = -3

	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
