package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pmartell/driveledger/internal/domain"
)

type driverRequest struct {
	Name string `json:"name"`
}

// listDrivers handles GET /drivers. Admins see every driver; other users
// see at most their own linked driver.
func (s *Server) listDrivers(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if user.IsAdmin {
		drivers, err := s.drivers.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, drivers)
		return
	}

	drivers := []domain.Driver{}
	if user.DriverID != nil {
		driver, err := s.drivers.GetByID(r.Context(), *user.DriverID)
		if err != nil {
			writeError(w, err)
			return
		}
		drivers = append(drivers, driver)
	}
	writeJSON(w, http.StatusOK, drivers)
}

// createDriver handles POST /drivers. Admin only — regular accounts get
// their driver profile at setup or from an admin.
func (s *Server) createDriver(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req driverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	driver, err := s.drivers.Create(r.Context(), domain.Driver{Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, driver)
}

// getDriver handles GET /drivers/{id}.
func (s *Server) getDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if !currentUser(r).CanAccessDriver(id) {
		writeForbidden(w)
		return
	}

	driver, err := s.drivers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// updateDriver handles PUT /drivers/{id}. Users may rename their own
// driver profile; admins may rename anyone's.
func (s *Server) updateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if !currentUser(r).CanAccessDriver(id) {
		writeForbidden(w)
		return
	}
	var req driverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	driver, err := s.drivers.Update(r.Context(), domain.Driver{ID: id, Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// deleteDriver handles DELETE /drivers/{id}. Admin only — it cascades to
// every record the driver owns.
func (s *Server) deleteDriver(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.drivers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
