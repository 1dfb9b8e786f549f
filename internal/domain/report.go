package domain

import "time"

// LabelTotal is one row of an ordered breakdown (income by platform,
// expenses by category). Breakdowns are sorted by descending amount then
// ascending label so report output is bit-for-bit reproducible.
type LabelTotal struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Aggregate holds the deduplicated sums for a driver scope and date range.
type Aggregate struct {
	GrossIncome        float64      `json:"gross_income"`
	TotalMiles         float64      `json:"total_miles"`
	TotalMinutes       int          `json:"total_minutes"`
	PlatformIncome     []LabelTotal `json:"platform_income"`
	ExpensesByCategory []LabelTotal `json:"expenses_by_category"`
	FuelCost           float64      `json:"fuel_cost"`
}

// TaxScenario is one of the two deduction methods. VehicleDeduction is the
// standard mileage deduction in the standard scenario and the actual vehicle
// operating cost (maintenance categories + fuel) in the actual scenario.
type TaxScenario struct {
	VehicleDeduction  float64 `json:"vehicle_deduction"`
	TotalDeduction    float64 `json:"total_deduction"`
	NetIncome         float64 `json:"net_income"`
	SelfEmploymentTax float64 `json:"self_employment_tax"`
}

// TaxReport always carries both scenarios so callers can present a direct
// comparison. No recommendation is made — which method is better depends on
// depreciation and other facts outside this system's knowledge.
type TaxReport struct {
	StandardMileage TaxScenario `json:"standard_mileage"`
	ActualExpense   TaxScenario `json:"actual_expense"`
}

// FuelInterval is one consecutive-fill-up sample in a vehicle's fuel
// economy series. MPG is nil when the interval is unmeasurable
// (zero gallons, or a lone fill-up with no prior baseline).
type FuelInterval struct {
	Date    time.Time `json:"date"`
	MPG     *float64  `json:"mpg"`
	Miles   float64   `json:"miles"`
	Gallons float64   `json:"gallons"`
}

// FuelEconomy is the per-vehicle fuel efficiency summary.
// WeightedAvgMPG is total miles over total gallons — weighted by fuel
// consumed, not an arithmetic mean of interval MPGs — and nil when fewer
// than two measurable fill-ups exist.
type FuelEconomy struct {
	WeightedAvgMPG *float64       `json:"weighted_avg_mpg"`
	Intervals      []FuelInterval `json:"intervals"`
}

// Report is the full output of one report request.
type Report struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Aggregate Aggregate `json:"aggregate"`
	Tax       TaxReport `json:"tax"`
}

// DashboardTotals is the all-time summary shown on the landing page.
type DashboardTotals struct {
	GrossIncome   float64 `json:"gross_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
	TotalMiles    float64 `json:"total_miles"`
	TotalMinutes  int     `json:"total_minutes"`
}
