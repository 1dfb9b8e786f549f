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

func fillAt(at time.Time, odometer, gallons float64) domain.Fuel {
	return domain.Fuel{
		ID:       uuid.New(),
		FilledAt: at,
		Odometer: odometer,
		Gallons:  gallons,
	}
}

func TestFuelEconomy_Empty(t *testing.T) {
	got := report.FuelEconomy(nil)

	assert.Nil(t, got.WeightedAvgMPG)
	assert.Empty(t, got.Intervals)
}

func TestFuelEconomy_SingleFillUp(t *testing.T) {
	fills := []domain.Fuel{fillAt(day(2024, 3, 1), 1000, 10)}

	got := report.FuelEconomy(fills)

	assert.Nil(t, got.WeightedAvgMPG)
	require.Len(t, got.Intervals, 1)
	assert.Nil(t, got.Intervals[0].MPG)
}

func TestFuelEconomy_WeightedAverage(t *testing.T) {
	// Baseline fill at 1000 (gallons ignored), then 300mi/10gal = 30 MPG and
	// 300mi/15gal = 20 MPG. Weighted by gallons: 600/25 = 24.0, not the
	// arithmetic mean 25.0 — the thirstier interval counts more.
	fills := []domain.Fuel{
		fillAt(day(2024, 3, 1), 1000, 0),
		fillAt(day(2024, 3, 8), 1300, 10),
		fillAt(day(2024, 3, 15), 1600, 15),
	}

	got := report.FuelEconomy(fills)

	require.NotNil(t, got.WeightedAvgMPG)
	assert.InDelta(t, 24.0, *got.WeightedAvgMPG, 1e-9)

	require.Len(t, got.Intervals, 2)
	require.NotNil(t, got.Intervals[0].MPG)
	assert.InDelta(t, 30.0, *got.Intervals[0].MPG, 1e-9)
	require.NotNil(t, got.Intervals[1].MPG)
	assert.InDelta(t, 20.0, *got.Intervals[1].MPG, 1e-9)
}

func TestFuelEconomy_UnsortedInput(t *testing.T) {
	fills := []domain.Fuel{
		fillAt(day(2024, 3, 15), 1600, 15),
		fillAt(day(2024, 3, 1), 1000, 0),
		fillAt(day(2024, 3, 8), 1300, 10),
	}

	got := report.FuelEconomy(fills)

	require.NotNil(t, got.WeightedAvgMPG)
	assert.InDelta(t, 24.0, *got.WeightedAvgMPG, 1e-9)
}

func TestFuelEconomy_TimestampTieBrokenByID(t *testing.T) {
	at := day(2024, 3, 1)
	first := fillAt(at, 1000, 0)
	second := fillAt(at, 1300, 10)
	first.ID = uuid.UUID{0x01}
	second.ID = uuid.UUID{0x02}

	// Reversed input order must not flip the interval direction.
	got := report.FuelEconomy([]domain.Fuel{second, first})

	require.Len(t, got.Intervals, 1)
	assert.InDelta(t, 300.0, got.Intervals[0].Miles, 1e-9)
}

func TestFuelEconomy_ZeroGallonIntervalExcluded(t *testing.T) {
	fills := []domain.Fuel{
		fillAt(day(2024, 3, 1), 1000, 0),
		fillAt(day(2024, 3, 8), 1300, 0), // pump logged without gallons
		fillAt(day(2024, 3, 15), 1600, 15),
	}

	got := report.FuelEconomy(fills)

	require.Len(t, got.Intervals, 2)
	assert.Nil(t, got.Intervals[0].MPG)
	// Only the measurable interval feeds the average: 300/15 = 20.
	require.NotNil(t, got.WeightedAvgMPG)
	assert.InDelta(t, 20.0, *got.WeightedAvgMPG, 1e-9)
}

func TestFuelEconomy_OdometerRollbackClamped(t *testing.T) {
	fills := []domain.Fuel{
		fillAt(day(2024, 3, 1), 1600, 0),
		fillAt(day(2024, 3, 8), 1300, 10), // entry error: odometer went backwards
	}

	got := report.FuelEconomy(fills)

	require.Len(t, got.Intervals, 1)
	assert.Zero(t, got.Intervals[0].Miles)
	require.NotNil(t, got.Intervals[0].MPG)
	assert.Zero(t, *got.Intervals[0].MPG)
}

func TestFuelEconomy_DoesNotMutateInput(t *testing.T) {
	fills := []domain.Fuel{
		fillAt(day(2024, 3, 15), 1600, 15),
		fillAt(day(2024, 3, 1), 1000, 0),
	}
	firstBefore := fills[0].FilledAt

	report.FuelEconomy(fills)

	assert.Equal(t, firstBefore, fills[0].FilledAt)
}
