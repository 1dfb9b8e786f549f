package report

import (
	"strings"

	"github.com/pmartell/driveledger/internal/domain"
)

// Self-employment tax constants. 92.35% of net earnings are subject to SE
// tax; the combined Social Security + Medicare rate is 15.3%. Both are
// statutory and deliberately not configurable.
const (
	seTaxableShare = 0.9235
	seTaxRate      = 0.153
)

// RateTable maps a calendar year to the IRS standard mileage rate for that
// year, in dollars per mile. Tables are plain values passed in per call so
// tests and future rate updates never touch package state.
type RateTable map[int]float64

// RateFor returns the rate for year. A year absent from the table falls
// back to the highest rate present — a report spanning a year whose rate is
// not published yet should estimate with the latest known rate rather than
// silently deduct nothing. An empty table yields 0.
func (rt RateTable) RateFor(year int) float64 {
	if rate, ok := rt[year]; ok {
		return rate
	}
	var max float64
	for _, rate := range rt {
		if rate > max {
			max = rate
		}
	}
	return max
}

// DefaultRateTable returns a fresh copy of the built-in standard mileage
// rates. Callers may mutate the returned map freely.
func DefaultRateTable() RateTable {
	return RateTable{
		2023: 0.655,
		2024: 0.670,
		2025: 0.670,
	}
}

// CategorySet is a case-insensitive set of expense category labels.
type CategorySet map[string]struct{}

// NewCategorySet builds a CategorySet from the given labels.
func NewCategorySet(labels ...string) CategorySet {
	s := make(CategorySet, len(labels))
	for _, l := range labels {
		s[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}
	return s
}

// Contains reports whether label is in the set, ignoring case and
// surrounding whitespace.
func (s CategorySet) Contains(label string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// DefaultVehicleCategories returns the closed set of expense categories
// treated as vehicle operating costs in the actual-expense scenario.
func DefaultVehicleCategories() CategorySet {
	return NewCategorySet("Oil Change", "Tires", "Maintenance", "Repairs", "Car Wash")
}

// fuelCategories matches legacy Expense rows logged under a fuel label.
// Fuel belongs in the Fuel entity; such rows are excluded from both expense
// buckets so fuel cost is never counted twice.
var fuelCategories = NewCategorySet("Fuel", "Gas")

// ExpenseSplit separates vehicle-operating expenses from general business
// expenses for the two tax scenarios.
type ExpenseSplit struct {
	Vehicle    float64
	NonVehicle float64
}

// SplitExpenses buckets expenses in the range into vehicle-operating and
// general totals. Categories in vehicleCategories go to Vehicle; "Fuel" and
// "Gas" rows are dropped entirely; everything else is NonVehicle.
func SplitExpenses(expenses []domain.Expense, vehicleCategories CategorySet, r DateRange) ExpenseSplit {
	var split ExpenseSplit
	for _, e := range expenses {
		if !r.Contains(e.Date) {
			continue
		}
		switch {
		case fuelCategories.Contains(e.Category):
			// tracked via Fuel records; counting the row would double it
		case vehicleCategories.Contains(e.Category):
			split.Vehicle += e.Amount
		default:
			split.NonVehicle += e.Amount
		}
	}
	return split
}

// MilesByYear buckets deduplicated business mileage by calendar year so the
// standard mileage deduction can apply each year's own rate across a range
// that spans a year boundary.
func MilesByYear(logs []domain.DailyLog, keptTrips []domain.Trip, r DateRange) map[int]float64 {
	miles := make(map[int]float64)
	for _, l := range logs {
		if r.Contains(l.Date) {
			miles[Year(l.Date)] += l.Miles()
		}
	}
	for _, t := range keptTrips {
		if r.Contains(t.OccurredAt) {
			miles[Year(t.OccurredAt)] += t.Miles
		}
	}
	return miles
}

// TaxReport derives both deduction scenarios from an aggregate.
//
// Standard mileage: miles × each year's rate, plus general expenses.
// Actual expense: vehicle-operating expenses + all fuel cost, plus general
// expenses. Fuel is taken in full — the tracker has no business/personal
// mileage ratio, so mixed-use vehicles will see overstated actual
// deductions.
//
// The SE tax estimate floors adjusted net income at zero: a loss owes no
// self-employment tax but never produces a negative one.
func TaxReport(agg domain.Aggregate, milesByYear map[int]float64, split ExpenseSplit, rates RateTable) domain.TaxReport {
	var standardMileage float64
	for year, miles := range milesByYear {
		standardMileage += miles * rates.RateFor(year)
	}

	actualVehicle := split.Vehicle + agg.FuelCost

	return domain.TaxReport{
		StandardMileage: scenario(agg.GrossIncome, standardMileage, split.NonVehicle),
		ActualExpense:   scenario(agg.GrossIncome, actualVehicle, split.NonVehicle),
	}
}

// scenario assembles one TaxScenario from a vehicle deduction and the shared
// general expense total.
func scenario(gross, vehicleDeduction, nonVehicle float64) domain.TaxScenario {
	totalDeduction := vehicleDeduction + nonVehicle
	net := gross - totalDeduction
	return domain.TaxScenario{
		VehicleDeduction:  vehicleDeduction,
		TotalDeduction:    totalDeduction,
		NetIncome:         net,
		SelfEmploymentTax: selfEmploymentTax(net),
	}
}

// selfEmploymentTax estimates SE tax on net business income.
func selfEmploymentTax(net float64) float64 {
	base := net * seTaxableShare
	if base < 0 {
		base = 0
	}
	return base * seTaxRate
}
