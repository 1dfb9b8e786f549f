package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/report"
	"github.com/pmartell/driveledger/internal/repo"
)

// ReportService assembles earnings, mileage and tax reports. It fetches raw
// records through the repos and hands everything to the pure functions in
// internal/report, so all arithmetic stays independently testable.
type ReportService struct {
	logs     repo.DailyLogRepo
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	fuels    repo.FuelRepo

	rates             report.RateTable
	vehicleCategories report.CategorySet
}

// NewReportService constructs a ReportService. A nil rates table falls back
// to the built-in IRS standard mileage rates.
func NewReportService(logs repo.DailyLogRepo, trips repo.TripRepo, expenses repo.ExpenseRepo, fuels repo.FuelRepo, rates report.RateTable) *ReportService {
	if rates == nil {
		rates = report.DefaultRateTable()
	}
	return &ReportService{
		logs:              logs,
		trips:             trips,
		expenses:          expenses,
		fuels:             fuels,
		rates:             rates,
		vehicleCategories: report.DefaultVehicleCategories(),
	}
}

// Build produces the full report for the given drivers over [start, end],
// inclusive at day granularity. Empty driverIDs means all drivers (admin
// view). Timestamps are truncated to their UTC calendar day before use.
func (s *ReportService) Build(ctx context.Context, driverIDs []uuid.UUID, start, end time.Time) (domain.Report, error) {
	if start.IsZero() || end.IsZero() {
		return domain.Report{}, fmt.Errorf("%w: start and end are required", domain.ErrValidation)
	}
	start = report.DateOf(start)
	end = report.DateOf(end)
	if end.Before(start) {
		return domain.Report{}, fmt.Errorf("%w: end precedes start", domain.ErrValidation)
	}
	// The range is inclusive of the whole end day, so the DB query runs to
	// the midnight after it.
	endExclusive := end.AddDate(0, 0, 1)

	logs, err := s.logs.ListInRange(ctx, driverIDs, start, endExclusive)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}
	trips, err := s.trips.ListInRange(ctx, driverIDs, start, endExclusive)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}
	expenses, err := s.expenses.ListInRange(ctx, driverIDs, start, endExclusive)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}
	fuels, err := s.fuels.ListInRange(ctx, driverIDs, start, endExclusive)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}

	rng := report.DateRange{Start: start, End: end}
	kept := report.KeptTrips(logs, trips)
	agg := report.Aggregate(logs, kept, expenses, fuels, rng)
	split := report.SplitExpenses(expenses, s.vehicleCategories, rng)
	miles := report.MilesByYear(logs, kept, rng)

	return domain.Report{
		Start:     start,
		End:       end,
		Aggregate: agg,
		Tax:       report.TaxReport(agg, miles, split, s.rates),
	}, nil
}

// Dashboard computes the all-time summary for the given drivers. Trips
// shadowed by a daily log on the same day are excluded, same as in reports.
// Fuel spend is not part of TotalExpenses here — the dashboard mirrors the
// expense ledger, while fuel lives in its own log.
func (s *ReportService) Dashboard(ctx context.Context, driverIDs []uuid.UUID) (domain.DashboardTotals, error) {
	logs, err := s.logs.ListByDrivers(ctx, driverIDs, 0)
	if err != nil {
		return domain.DashboardTotals{}, fmt.Errorf("service.ReportService.Dashboard: %w", err)
	}
	trips, err := s.trips.ListByDrivers(ctx, driverIDs, 0)
	if err != nil {
		return domain.DashboardTotals{}, fmt.Errorf("service.ReportService.Dashboard: %w", err)
	}
	expenses, err := s.expenses.ListByDrivers(ctx, driverIDs, 0)
	if err != nil {
		return domain.DashboardTotals{}, fmt.Errorf("service.ReportService.Dashboard: %w", err)
	}

	var totals domain.DashboardTotals
	for _, l := range logs {
		totals.GrossIncome += l.TotalEarned
		totals.TotalMiles += l.Miles()
		totals.TotalMinutes += l.MinutesDriven
	}
	for _, t := range report.KeptTrips(logs, trips) {
		totals.GrossIncome += t.Income()
		totals.TotalMiles += t.Miles
		totals.TotalMinutes += t.Minutes()
	}
	for _, e := range expenses {
		totals.TotalExpenses += e.Amount
	}
	totals.NetIncome = totals.GrossIncome - totals.TotalExpenses
	return totals, nil
}
