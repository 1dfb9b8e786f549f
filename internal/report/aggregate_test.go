package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/report"
)

func june2024() report.DateRange {
	return report.DateRange{Start: day(2024, 6, 1), End: day(2024, 6, 30)}
}

func TestAggregate_Empty(t *testing.T) {
	got := report.Aggregate(nil, nil, nil, nil, june2024())

	assert.Zero(t, got.GrossIncome)
	assert.Zero(t, got.TotalMiles)
	assert.Zero(t, got.TotalMinutes)
	assert.Zero(t, got.FuelCost)
	assert.Empty(t, got.PlatformIncome)
	assert.Empty(t, got.ExpensesByCategory)
}

func TestAggregate_NoDoubleCount(t *testing.T) {
	// One DailyLog (earned=100) and one same-day trip (fare=40, tip=5).
	// Dedup drops the trip entirely: gross over June is exactly 100.
	driver := uuid.New()
	logs := []domain.DailyLog{logOn(driver, day(2024, 6, 1), 100)}
	trip := tripOn(driver, day(2024, 6, 1).Add(13*time.Hour), 40)
	trip.Tip = 5

	kept := report.KeptTrips(logs, []domain.Trip{trip})
	got := report.Aggregate(logs, kept, nil, nil, june2024())

	assert.InDelta(t, 100.0, got.GrossIncome, 1e-9)
}

func TestAggregate_TripAdditivity(t *testing.T) {
	driver := uuid.New()
	t1 := tripOn(driver, day(2024, 6, 1).Add(9*time.Hour), 40)
	t1.Tip, t1.Bonus, t1.Miles = 5, 2, 10
	t2 := tripOn(driver, day(2024, 6, 2).Add(9*time.Hour), 30)
	t2.Miles = 8

	got := report.Aggregate(nil, []domain.Trip{t1, t2}, nil, nil, june2024())

	assert.InDelta(t, 77.0, got.GrossIncome, 1e-9)
	assert.InDelta(t, 18.0, got.TotalMiles, 1e-9)
}

func TestAggregate_DailyLogMileageClamped(t *testing.T) {
	driver := uuid.New()
	l := logOn(driver, day(2024, 6, 1), 50)
	l.OdoStart, l.OdoEnd = 2000, 1900 // entry error

	got := report.Aggregate([]domain.DailyLog{l}, nil, nil, nil, june2024())

	assert.Zero(t, got.TotalMiles)
}

func TestAggregate_MinutesSummed(t *testing.T) {
	driver := uuid.New()
	l := logOn(driver, day(2024, 6, 1), 50)
	l.MinutesDriven = 240
	trip := tripOn(driver, day(2024, 6, 2).Add(9*time.Hour), 20)
	minutes := 35
	trip.DurationMinutes = &minutes
	untimed := tripOn(driver, day(2024, 6, 3).Add(9*time.Hour), 15) // nil duration counts as 0

	got := report.Aggregate([]domain.DailyLog{l}, []domain.Trip{trip, untimed}, nil, nil, june2024())

	assert.Equal(t, 275, got.TotalMinutes)
}

func TestAggregate_PlatformBreakdownOrdered(t *testing.T) {
	driver := uuid.New()
	uber := logOn(driver, day(2024, 6, 1), 100)
	uber.Platform = "Uber"
	lyft := logOn(driver, day(2024, 6, 2), 100) // ties with Uber; label breaks the tie
	lyft.Platform = "Lyft"
	dash := tripOn(driver, day(2024, 6, 3).Add(9*time.Hour), 150)
	dash.Platform = "DoorDash"
	unlabeled := tripOn(driver, day(2024, 6, 4).Add(9*time.Hour), 20)

	got := report.Aggregate(
		[]domain.DailyLog{uber, lyft},
		[]domain.Trip{dash, unlabeled},
		nil, nil, june2024(),
	)

	want := []domain.LabelTotal{
		{Label: "DoorDash", Amount: 150},
		{Label: "Lyft", Amount: 100},
		{Label: "Uber", Amount: 100},
		{Label: report.UnspecifiedPlatform, Amount: 20},
	}
	assert.Equal(t, want, got.PlatformIncome)
}

func TestAggregate_ExpenseBreakdown(t *testing.T) {
	driver := uuid.New()
	expenses := []domain.Expense{
		{ID: uuid.New(), DriverID: driver, Date: day(2024, 6, 5), Category: "Tires", Amount: 200},
		{ID: uuid.New(), DriverID: driver, Date: day(2024, 6, 9), Category: "Tires", Amount: 50},
		{ID: uuid.New(), DriverID: driver, Date: day(2024, 6, 12), Amount: 30}, // no category
	}

	got := report.Aggregate(nil, nil, expenses, nil, june2024())

	want := []domain.LabelTotal{
		{Label: "Tires", Amount: 250},
		{Label: report.UncategorizedCategory, Amount: 30},
	}
	assert.Equal(t, want, got.ExpensesByCategory)
}

func TestAggregate_FuelCostSummed(t *testing.T) {
	fuels := []domain.Fuel{
		fillAt(day(2024, 6, 3), 1000, 10),
		fillAt(day(2024, 6, 20), 1300, 12),
	}
	fuels[0].TotalPaid = 35.50
	fuels[1].TotalPaid = 41.25

	got := report.Aggregate(nil, nil, nil, fuels, june2024())

	assert.InDelta(t, 76.75, got.FuelCost, 1e-9)
}

func TestAggregate_RangeEdgesInclusive(t *testing.T) {
	driver := uuid.New()
	trips := []domain.Trip{
		tripOn(driver, day(2024, 6, 1).Add(1*time.Minute), 10),   // start date, early morning
		tripOn(driver, day(2024, 6, 30).Add(23*time.Hour), 20),   // end date, late evening
		tripOn(driver, day(2024, 5, 31).Add(23*time.Hour), 1000), // day before start
		tripOn(driver, day(2024, 7, 1), 1000),                    // day after end
	}

	got := report.Aggregate(nil, trips, nil, nil, june2024())

	assert.InDelta(t, 30.0, got.GrossIncome, 1e-9)
}

func TestAggregate_Deterministic(t *testing.T) {
	driver := uuid.New()
	var logs []domain.DailyLog
	for i, p := range []string{"Uber", "Lyft", "DoorDash", "Grubhub", "Instacart"} {
		l := logOn(driver, day(2024, 6, i+1), 40)
		l.Platform = p
		logs = append(logs, l)
	}

	first := report.Aggregate(logs, nil, nil, nil, june2024())
	for i := 0; i < 10; i++ {
		require.Equal(t, first, report.Aggregate(logs, nil, nil, nil, june2024()))
	}
}
