package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is one completed ride or delivery, logged individually.
// OccurredAt is a full timestamp; reporting code reduces it to a calendar
// date before comparing it against DailyLog dates or range bounds.
type Trip struct {
	ID              uuid.UUID  `json:"id"`
	DriverID        uuid.UUID  `json:"driver_id"`
	VehicleID       *uuid.UUID `json:"vehicle_id,omitempty"`
	OccurredAt      time.Time  `json:"occurred_at"`
	Platform        string     `json:"platform,omitempty"` // free-form label, e.g. "Uber"
	Fare            float64    `json:"fare"`
	Tip             float64    `json:"tip"`
	Bonus           float64    `json:"bonus"`
	Miles           float64    `json:"miles"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"` // nil when not tracked
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Income returns the trip's total income contribution: fare + tip + bonus.
func (t Trip) Income() float64 {
	return t.Fare + t.Tip + t.Bonus
}

// Minutes returns the tracked duration, or 0 when none was recorded.
func (t Trip) Minutes() int {
	if t.DurationMinutes == nil {
		return 0
	}
	return *t.DurationMinutes
}
