package report

import (
	"bytes"
	"sort"

	"github.com/pmartell/driveledger/internal/domain"
)

// FuelEconomy computes per-interval and weighted-average miles per gallon
// from one vehicle's fill-up records, supplied in any order.
//
// Fills are ordered by (timestamp, id) — the id tie-break keeps the series
// deterministic when two fills share a timestamp. The first fill is the
// odometer baseline; each later fill yields one interval whose miles are the
// odometer delta (clamped to zero) and whose gallons are the amount pumped
// at that fill. An interval with zero gallons reports a nil MPG and
// contributes nothing to the weighted average denominator.
//
// With no records the result is empty; with exactly one there is no interval
// to measure, so the series holds a single nil-MPG entry for display.
func FuelEconomy(fuels []domain.Fuel) domain.FuelEconomy {
	if len(fuels) == 0 {
		return domain.FuelEconomy{}
	}

	ordered := make([]domain.Fuel, len(fuels))
	copy(ordered, fuels)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].FilledAt.Equal(ordered[j].FilledAt) {
			return ordered[i].FilledAt.Before(ordered[j].FilledAt)
		}
		return bytes.Compare(ordered[i].ID[:], ordered[j].ID[:]) < 0
	})

	if len(ordered) == 1 {
		return domain.FuelEconomy{
			Intervals: []domain.FuelInterval{{
				Date:    ordered[0].FilledAt,
				Gallons: ordered[0].Gallons,
			}},
		}
	}

	var totalMiles, totalGallons float64
	intervals := make([]domain.FuelInterval, 0, len(ordered)-1)

	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]

		miles := curr.Odometer - prev.Odometer
		if miles < 0 {
			miles = 0
		}
		gallons := curr.Gallons

		interval := domain.FuelInterval{
			Date:    curr.FilledAt,
			Miles:   miles,
			Gallons: gallons,
		}
		if gallons > 0 {
			mpg := miles / gallons
			interval.MPG = &mpg
			totalMiles += miles
			totalGallons += gallons
		}
		intervals = append(intervals, interval)
	}

	result := domain.FuelEconomy{Intervals: intervals}
	if totalGallons > 0 {
		avg := totalMiles / totalGallons
		result.WeightedAvgMPG = &avg
	}
	return result
}
