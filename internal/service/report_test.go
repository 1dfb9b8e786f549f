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

// mockExpenseRepo and mockFuelRepo follow the same function-field pattern
// as mockTripRepo in trip_test.go; mockDailyLogRepo lives in
// dailylog_test.go.
type mockExpenseRepo struct {
	create        func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Expense, error)
	listByDrivers func(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error)
	listInRange   func(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Expense, error)
	update        func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, id)
}
func (m *mockExpenseRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error) {
	return m.listByDrivers(ctx, driverIDs, limit)
}
func (m *mockExpenseRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Expense, error) {
	return m.listInRange(ctx, driverIDs, start, endExclusive)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockFuelRepo struct {
	create        func(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Fuel, error)
	listByDrivers func(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error)
	listInRange   func(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Fuel, error)
	listByVehicle func(ctx context.Context, vehicleID uuid.UUID) ([]domain.Fuel, error)
	update        func(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFuelRepo) Create(ctx context.Context, f domain.Fuel) (domain.Fuel, error) {
	return m.create(ctx, f)
}
func (m *mockFuelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Fuel, error) {
	return m.getByID(ctx, id)
}
func (m *mockFuelRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error) {
	return m.listByDrivers(ctx, driverIDs, limit)
}
func (m *mockFuelRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Fuel, error) {
	return m.listInRange(ctx, driverIDs, start, endExclusive)
}
func (m *mockFuelRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Fuel, error) {
	return m.listByVehicle(ctx, vehicleID)
}
func (m *mockFuelRepo) Update(ctx context.Context, f domain.Fuel) (domain.Fuel, error) {
	return m.update(ctx, f)
}
func (m *mockFuelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.FuelRepo = (*mockFuelRepo)(nil)

// newReportService wires a ReportService over fixed record collections,
// asserting along the way that the repos receive the half-open range
// [start, end+1day).
func newReportService(t *testing.T, logs []domain.DailyLog, trips []domain.Trip, expenses []domain.Expense, fuels []domain.Fuel) *service.ReportService {
	t.Helper()

	logRepo := &mockDailyLogRepo{
		listInRange: func(_ context.Context, _ []uuid.UUID, start, endExclusive time.Time) ([]domain.DailyLog, error) {
			h, m, s := start.Clock()
			assert.Zero(t, h+m+s, "start must be truncated to midnight")
			assert.True(t, endExclusive.After(start))
			return logs, nil
		},
		listByDrivers: func(context.Context, []uuid.UUID, int) ([]domain.DailyLog, error) {
			return logs, nil
		},
	}
	tripRepo := &mockTripRepo{
		listInRange: func(context.Context, []uuid.UUID, time.Time, time.Time) ([]domain.Trip, error) {
			return trips, nil
		},
		listByDrivers: func(context.Context, []uuid.UUID, int) ([]domain.Trip, error) {
			return trips, nil
		},
	}
	expenseRepo := &mockExpenseRepo{
		listInRange: func(context.Context, []uuid.UUID, time.Time, time.Time) ([]domain.Expense, error) {
			return expenses, nil
		},
		listByDrivers: func(context.Context, []uuid.UUID, int) ([]domain.Expense, error) {
			return expenses, nil
		},
	}
	fuelRepo := &mockFuelRepo{
		listInRange: func(context.Context, []uuid.UUID, time.Time, time.Time) ([]domain.Fuel, error) {
			return fuels, nil
		},
	}
	return service.NewReportService(logRepo, tripRepo, expenseRepo, fuelRepo, nil)
}

func TestReportService_Build_DeduplicatesAndTaxes(t *testing.T) {
	driverID := uuid.New()
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	logs := []domain.DailyLog{{
		DriverID:    driverID,
		Date:        june1,
		OdoStart:    1000,
		OdoEnd:      1100,
		TotalEarned: 100,
		Platform:    "Uber",
	}}
	trips := []domain.Trip{
		// Shadowed by the daily log — must not count.
		{DriverID: driverID, OccurredAt: june1.Add(18 * time.Hour), Fare: 40, Tip: 5, Miles: 30},
		// Next day — counts.
		{DriverID: driverID, OccurredAt: june1.AddDate(0, 0, 1), Fare: 30, Miles: 8, Platform: "DoorDash"},
	}
	expenses := []domain.Expense{
		{DriverID: driverID, Date: june1, Category: "Phone Mount", Amount: 20},
		{DriverID: driverID, Date: june1, Category: "Oil Change", Amount: 60},
		{DriverID: driverID, Date: june1, Category: "Gas", Amount: 50}, // excluded entirely
	}
	fuels := []domain.Fuel{
		{DriverID: driverID, FilledAt: june1.Add(20 * time.Hour), Gallons: 10, TotalPaid: 42},
	}

	svc := newReportService(t, logs, trips, expenses, fuels)

	got, err := svc.Build(context.Background(), []uuid.UUID{driverID}, june1, june1.AddDate(0, 0, 29))
	require.NoError(t, err)

	assert.InDelta(t, 130, got.Aggregate.GrossIncome, 1e-9, "100 log + 30 kept trip")
	assert.InDelta(t, 108, got.Aggregate.TotalMiles, 1e-9, "100 log delta + 8 trip miles")
	assert.InDelta(t, 42, got.Aggregate.FuelCost, 1e-9)

	// Standard: 108 mi × 0.670 (2024) deducted, plus the 20 general expense.
	standard := got.Tax.StandardMileage
	assert.InDelta(t, 108*0.670, standard.VehicleDeduction, 1e-9)
	assert.InDelta(t, 108*0.670+20, standard.TotalDeduction, 1e-9)

	// Actual: 60 oil change + 42 fuel, plus the 20 general expense. The Gas
	// expense row is excluded from both scenarios.
	actual := got.Tax.ActualExpense
	assert.InDelta(t, 102, actual.VehicleDeduction, 1e-9)
	assert.InDelta(t, 122, actual.TotalDeduction, 1e-9)
	assert.InDelta(t, 130-122, actual.NetIncome, 1e-9)
}

func TestReportService_Build_RejectsBadRange(t *testing.T) {
	svc := newReportService(t, nil, nil, nil, nil)
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Build(context.Background(), nil, june, june.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Build(context.Background(), nil, time.Time{}, june)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_Build_SingleDayRange(t *testing.T) {
	driverID := uuid.New()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trips := []domain.Trip{
		// Late on the end date — still inside the inclusive range.
		{DriverID: driverID, OccurredAt: day.Add(23*time.Hour + 59*time.Minute), Fare: 10},
	}

	svc := newReportService(t, nil, trips, nil, nil)

	got, err := svc.Build(context.Background(), []uuid.UUID{driverID}, day, day)
	require.NoError(t, err)
	assert.InDelta(t, 10, got.Aggregate.GrossIncome, 1e-9)
}

func TestReportService_Dashboard_DeduplicatesAllTime(t *testing.T) {
	driverID := uuid.New()
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	logs := []domain.DailyLog{{DriverID: driverID, Date: june1, TotalEarned: 100, OdoStart: 0, OdoEnd: 40}}
	trips := []domain.Trip{
		{DriverID: driverID, OccurredAt: june1.Add(time.Hour), Fare: 45}, // shadowed
		{DriverID: driverID, OccurredAt: june1.AddDate(0, 0, 1), Fare: 30, Miles: 8},
	}
	expenses := []domain.Expense{{DriverID: driverID, Date: june1, Category: "Tires", Amount: 80}}

	svc := newReportService(t, logs, trips, expenses, nil)

	got, err := svc.Dashboard(context.Background(), []uuid.UUID{driverID})
	require.NoError(t, err)

	assert.InDelta(t, 130, got.GrossIncome, 1e-9)
	assert.InDelta(t, 80, got.TotalExpenses, 1e-9)
	assert.InDelta(t, 50, got.NetIncome, 1e-9)
	assert.InDelta(t, 48, got.TotalMiles, 1e-9)
}
