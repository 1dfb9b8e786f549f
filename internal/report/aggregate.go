package report

import (
	"sort"
	"time"

	"github.com/pmartell/driveledger/internal/domain"
)

// Labels substituted when a record carries no platform or category.
const (
	UnspecifiedPlatform   = "(unspecified)"
	UncategorizedCategory = "(uncategorized)"
)

// DateRange is an inclusive [Start, End] range compared at day granularity.
// A record on the end date counts regardless of its time of day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// Year returns the calendar year of t, matching the keys of a mileage rate
// table.
func Year(t time.Time) int {
	return DateOf(t).Year()
}

// Aggregate sums deduplicated income, mileage, minutes, the per-platform
// income breakdown, the per-category expense breakdown, and total fuel cost
// over the range. Trips must already be deduplicated via KeptTrips; passing
// raw trips double-counts days covered by a DailyLog.
//
// Records outside the range are skipped rather than assumed pre-filtered,
// so callers may hand over a superset (e.g. a whole year of records for a
// quarterly report).
func Aggregate(logs []domain.DailyLog, keptTrips []domain.Trip, expenses []domain.Expense, fuels []domain.Fuel, r DateRange) domain.Aggregate {
	var agg domain.Aggregate
	platformIncome := make(map[string]float64)
	expenseByCategory := make(map[string]float64)

	for _, l := range logs {
		if !r.Contains(l.Date) {
			continue
		}
		agg.GrossIncome += l.TotalEarned
		agg.TotalMiles += l.Miles()
		agg.TotalMinutes += l.MinutesDriven
		platformIncome[labelOr(l.Platform, UnspecifiedPlatform)] += l.TotalEarned
	}

	for _, t := range keptTrips {
		if !r.Contains(t.OccurredAt) {
			continue
		}
		income := t.Income()
		agg.GrossIncome += income
		agg.TotalMiles += t.Miles
		agg.TotalMinutes += t.Minutes()
		platformIncome[labelOr(t.Platform, UnspecifiedPlatform)] += income
	}

	for _, e := range expenses {
		if !r.Contains(e.Date) {
			continue
		}
		expenseByCategory[labelOr(e.Category, UncategorizedCategory)] += e.Amount
	}

	for _, f := range fuels {
		if !r.Contains(f.FilledAt) {
			continue
		}
		agg.FuelCost += f.TotalPaid
	}

	agg.PlatformIncome = orderedTotals(platformIncome)
	agg.ExpensesByCategory = orderedTotals(expenseByCategory)
	return agg
}

// labelOr returns label, or fallback when label is empty.
func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// orderedTotals flattens a label→amount map into a slice sorted by
// descending amount then ascending label. The fixed tie-break keeps report
// output reproducible across runs (map iteration order is randomized).
func orderedTotals(m map[string]float64) []domain.LabelTotal {
	out := make([]domain.LabelTotal, 0, len(m))
	for label, amount := range m {
		out = append(out, domain.LabelTotal{Label: label, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Label < out[j].Label
	})
	return out
}
