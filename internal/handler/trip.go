package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
)

// tripRequest is the body for POST /trips and PUT /trips/{id}. DriverID is
// optional and defaults to the caller's linked driver.
type tripRequest struct {
	DriverID        *uuid.UUID `json:"driver_id,omitempty"`
	VehicleID       *uuid.UUID `json:"vehicle_id,omitempty"`
	OccurredAt      time.Time  `json:"occurred_at"`
	Platform        string     `json:"platform,omitempty"`
	Fare            float64    `json:"fare"`
	Tip             float64    `json:"tip"`
	Bonus           float64    `json:"bonus"`
	Miles           float64    `json:"miles"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// listTrips handles GET /trips?limit=&driver_id=. Newest first.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.List(r.Context(), driverIDs, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}
	driverID, ok := resolveDriverID(w, r, req.DriverID)
	if !ok {
		return
	}

	trip, err := s.trips.Create(r.Context(), tripFromRequest(req, driverID, uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ownedTrip loads the trip and checks the caller may touch it.
func (s *Server) ownedTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	id, ok := idParam(w, r)
	if !ok {
		return domain.Trip{}, false
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.Trip{}, false
	}
	if !currentUser(r).CanAccessDriver(trip.DriverID) {
		writeForbidden(w)
		return domain.Trip{}, false
	}
	return trip, true
}

// getTrip handles GET /trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.ownedTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// updateTrip handles PUT /trips/{id}. A trip cannot be moved to another
// driver — the stored driver reference always wins over the body.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedTrip(w, r)
	if !ok {
		return
	}
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	updated, err := s.trips.Update(r.Context(), tripFromRequest(req, existing.DriverID, existing.ID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteTrip handles DELETE /trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.ownedTrip(w, r)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), trip.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tripFromRequest(req tripRequest, driverID, id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:              id,
		DriverID:        driverID,
		VehicleID:       req.VehicleID,
		OccurredAt:      req.OccurredAt,
		Platform:        req.Platform,
		Fare:            req.Fare,
		Tip:             req.Tip,
		Bonus:           req.Bonus,
		Miles:           req.Miles,
		DurationMinutes: req.DurationMinutes,
	}
}
