package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a non-fuel business cost. Category is a free-form label;
// the tax engine recognizes a fixed set of vehicle-operating categories
// when splitting actual vehicle expenses from general ones.
type Expense struct {
	ID        uuid.UUID `json:"id"`
	DriverID  uuid.UUID `json:"driver_id"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fuel is one fill-up event. Fuel cost is tracked here rather than as an
// Expense so the actual-expense tax scenario can count it exactly once.
// Odometer and Gallons default to 0 when the user did not record them;
// the fuel economy calculator guards against both.
type Fuel struct {
	ID        uuid.UUID  `json:"id"`
	DriverID  uuid.UUID  `json:"driver_id"`
	VehicleID *uuid.UUID `json:"vehicle_id,omitempty"`
	FilledAt  time.Time  `json:"filled_at"`
	Odometer  float64    `json:"odometer"`
	Gallons   float64    `json:"gallons"`
	TotalPaid float64    `json:"total_paid"`
	Vendor    string     `json:"vendor,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
