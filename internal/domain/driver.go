// Package domain contains the core data types for Drive Ledger.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (report, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Driver is the identity a set of records belongs to.
// A driver owns zero or more vehicles, trips, daily logs, expenses, and
// fuel logs; deleting a driver cascades to all of them.
type Driver struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vehicle is a physical car associated with exactly one driver.
// At most one vehicle per driver may have IsDefault set; the repo enforces
// this by unsetting the others whenever a default is assigned.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	DriverID  uuid.UUID `json:"driver_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
