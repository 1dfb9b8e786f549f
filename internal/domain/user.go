package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in. A user optionally links to a driver;
// non-admin users only see records belonging to their linked driver.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	DriverID     *uuid.UUID `json:"driver_id,omitempty"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanAccessDriver reports whether the user may read or write records
// belonging to driverID. Admins can access everything; other users only
// their linked driver.
func (u User) CanAccessDriver(driverID uuid.UUID) bool {
	if u.IsAdmin {
		return true
	}
	return u.DriverID != nil && *u.DriverID == driverID
}
