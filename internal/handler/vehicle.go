package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
)

type vehicleRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// listVehicles handles GET /drivers/{id}/vehicles.
func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	driverID, ok := idParam(w, r)
	if !ok {
		return
	}
	if !currentUser(r).CanAccessDriver(driverID) {
		writeForbidden(w)
		return
	}

	vehicles, err := s.vehicles.ListByDriver(r.Context(), driverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// createVehicle handles POST /drivers/{id}/vehicles.
func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	driverID, ok := idParam(w, r)
	if !ok {
		return
	}
	if !currentUser(r).CanAccessDriver(driverID) {
		writeForbidden(w)
		return
	}
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	vehicle, err := s.vehicles.Create(r.Context(), domain.Vehicle{
		DriverID:  driverID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// ownedVehicle loads the vehicle and checks the caller may touch it.
// ok is false when a response has already been written.
func (s *Server) ownedVehicle(w http.ResponseWriter, r *http.Request) (domain.Vehicle, bool) {
	id, ok := idParam(w, r)
	if !ok {
		return domain.Vehicle{}, false
	}
	vehicle, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.Vehicle{}, false
	}
	if !currentUser(r).CanAccessDriver(vehicle.DriverID) {
		writeForbidden(w)
		return domain.Vehicle{}, false
	}
	return vehicle, true
}

// getVehicle handles GET /vehicles/{id}.
func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.ownedVehicle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// updateVehicle handles PUT /vehicles/{id}. Renames only; the default flag
// is changed via PUT /vehicles/{id}/default.
func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.ownedVehicle(w, r)
	if !ok {
		return
	}
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	vehicle.Name = req.Name
	updated, err := s.vehicles.Update(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteVehicle handles DELETE /vehicles/{id}.
func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.ownedVehicle(w, r)
	if !ok {
		return
	}
	if err := s.vehicles.Delete(r.Context(), vehicle.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setDefaultVehicle handles PUT /vehicles/{id}/default.
func (s *Server) setDefaultVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.ownedVehicle(w, r)
	if !ok {
		return
	}
	if err := s.vehicles.SetDefault(r.Context(), vehicle.DriverID, vehicle.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// vehicleEconomy handles GET /vehicles/{id}/economy. Returns the weighted
// average MPG plus the per-interval series for trending.
func (s *Server) vehicleEconomy(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := s.ownedVehicle(w, r)
	if !ok {
		return
	}
	economy, err := s.fuels.EconomyForVehicle(r.Context(), vehicle.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		VehicleID uuid.UUID `json:"vehicle_id"`
		domain.FuelEconomy
	}{vehicle.ID, economy})
}
