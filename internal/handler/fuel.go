package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
)

// fuelRequest is the body for POST /fuel and PUT /fuel/{id}.
type fuelRequest struct {
	DriverID  *uuid.UUID `json:"driver_id,omitempty"`
	VehicleID *uuid.UUID `json:"vehicle_id,omitempty"`
	FilledAt  time.Time  `json:"filled_at"`
	Odometer  float64    `json:"odometer"`
	Gallons   float64    `json:"gallons"`
	TotalPaid float64    `json:"total_paid"`
	Vendor    string     `json:"vendor,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// listFuel handles GET /fuel?limit=&driver_id=. Newest first.
func (s *Server) listFuel(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	fuels, err := s.fuels.List(r.Context(), driverIDs, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fuels)
}

// createFuel handles POST /fuel.
func (s *Server) createFuel(w http.ResponseWriter, r *http.Request) {
	var req fuelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}
	driverID, ok := resolveDriverID(w, r, req.DriverID)
	if !ok {
		return
	}

	fuel, err := s.fuels.Create(r.Context(), fuelFromRequest(req, driverID, uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fuel)
}

// ownedFuel loads the fill-up and checks the caller may touch it.
func (s *Server) ownedFuel(w http.ResponseWriter, r *http.Request) (domain.Fuel, bool) {
	id, ok := idParam(w, r)
	if !ok {
		return domain.Fuel{}, false
	}
	fuel, err := s.fuels.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.Fuel{}, false
	}
	if !currentUser(r).CanAccessDriver(fuel.DriverID) {
		writeForbidden(w)
		return domain.Fuel{}, false
	}
	return fuel, true
}

// getFuel handles GET /fuel/{id}.
func (s *Server) getFuel(w http.ResponseWriter, r *http.Request) {
	fuel, ok := s.ownedFuel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, fuel)
}

// updateFuel handles PUT /fuel/{id}.
func (s *Server) updateFuel(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedFuel(w, r)
	if !ok {
		return
	}
	var req fuelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	updated, err := s.fuels.Update(r.Context(), fuelFromRequest(req, existing.DriverID, existing.ID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteFuel handles DELETE /fuel/{id}.
func (s *Server) deleteFuel(w http.ResponseWriter, r *http.Request) {
	fuel, ok := s.ownedFuel(w, r)
	if !ok {
		return
	}
	if err := s.fuels.Delete(r.Context(), fuel.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func fuelFromRequest(req fuelRequest, driverID, id uuid.UUID) domain.Fuel {
	return domain.Fuel{
		ID:        id,
		DriverID:  driverID,
		VehicleID: req.VehicleID,
		FilledAt:  req.FilledAt,
		Odometer:  req.Odometer,
		Gallons:   req.Gallons,
		TotalPaid: req.TotalPaid,
		Vendor:    req.Vendor,
		Notes:     req.Notes,
	}
}
