package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyLog is a per-day income/mileage summary entered in lieu of individual
// trips. Date carries day precision only — it is always midnight UTC.
//
// When a DailyLog exists for a (driver, date) pair it is assumed to capture
// all income for that day, so same-day trips are excluded from aggregate
// totals (see report.KeptTrips).
type DailyLog struct {
	ID            uuid.UUID `json:"id"`
	DriverID      uuid.UUID `json:"driver_id"`
	Date          time.Time `json:"date"`
	OdoStart      float64   `json:"odo_start"`
	OdoEnd        float64   `json:"odo_end"`
	MinutesDriven int       `json:"minutes_driven"`
	TotalEarned   float64   `json:"total_earned"`
	Platform      string    `json:"platform,omitempty"`
	TripsCount    *int      `json:"trips_count,omitempty"` // informational only, not used for dedup
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Miles returns the odometer delta for the day, clamped to zero so an
// odometer rollback or entry error never produces negative mileage.
func (d DailyLog) Miles() float64 {
	miles := d.OdoEnd - d.OdoStart
	if miles < 0 {
		return 0
	}
	return miles
}
