// Package report implements the reconciliation and report-aggregation engine:
// trip/daily-log deduplication, fuel economy, range aggregation, and the
// dual-method tax report. Everything here is pure computation over
// already-fetched records — no I/O, no mutation of inputs, deterministic
// output for identical input.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
)

// dayKey identifies one driver's calendar day.
type dayKey struct {
	driverID uuid.UUID
	date     time.Time
}

// DateOf reduces a timestamp to its calendar date: midnight UTC of the same
// year/month/day. All day-granularity comparisons in this package go through
// DateOf so a timestamp is never compared directly against a date-only value.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// KeptTrips returns the trips not shadowed by a DailyLog. A trip is shadowed
// when a DailyLog exists for the same driver on the trip's calendar date; the
// DailyLog is assumed to already capture that day's income, so the trip is
// dropped from all downstream sums to avoid double-counting.
//
// All same-day trips are dropped regardless of platform, even when the
// DailyLog's platform differs. That mirrors the recorded daily totals and is
// a known precision loss for drivers who mix per-day and per-trip logging
// across platforms.
//
// The result is idempotent: kept trips never match a DailyLog date, so
// re-applying KeptTrips with the same logs returns them unchanged.
func KeptTrips(logs []domain.DailyLog, trips []domain.Trip) []domain.Trip {
	if len(logs) == 0 {
		return trips
	}

	shadowed := make(map[dayKey]struct{}, len(logs))
	for _, l := range logs {
		shadowed[dayKey{driverID: l.DriverID, date: DateOf(l.Date)}] = struct{}{}
	}

	kept := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if _, ok := shadowed[dayKey{driverID: t.DriverID, date: DateOf(t.OccurredAt)}]; ok {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
