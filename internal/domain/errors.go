package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when credentials are missing or wrong, or when
// a user attempts to touch another driver's records.
// Handlers should map this to HTTP 401 or 403 depending on context.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a uniqueness rule is violated
// (e.g. duplicate username). Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
