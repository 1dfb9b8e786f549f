package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pmartell/driveledger/internal/domain"
)

// dailyLogRequest is the body for POST /daily-logs and PUT /daily-logs/{id}.
// Date is a date-only value ("2006-01-02"); the service pins it to midnight
// UTC so it shadows the right trips.
type dailyLogRequest struct {
	DriverID      *uuid.UUID         `json:"driver_id,omitempty"`
	Date          openapi_types.Date `json:"date"`
	OdoStart      float64            `json:"odo_start"`
	OdoEnd        float64            `json:"odo_end"`
	MinutesDriven int                `json:"minutes_driven"`
	TotalEarned   float64            `json:"total_earned"`
	Platform      string             `json:"platform,omitempty"`
	TripsCount    *int               `json:"trips_count,omitempty"`
}

// listDailyLogs handles GET /daily-logs?limit=&driver_id=. Newest first.
func (s *Server) listDailyLogs(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	logs, err := s.logs.List(r.Context(), driverIDs, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// createDailyLog handles POST /daily-logs.
func (s *Server) createDailyLog(w http.ResponseWriter, r *http.Request) {
	var req dailyLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}
	driverID, ok := resolveDriverID(w, r, req.DriverID)
	if !ok {
		return
	}

	log, err := s.logs.Create(r.Context(), dailyLogFromRequest(req, driverID, uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// ownedDailyLog loads the daily log and checks the caller may touch it.
func (s *Server) ownedDailyLog(w http.ResponseWriter, r *http.Request) (domain.DailyLog, bool) {
	id, ok := idParam(w, r)
	if !ok {
		return domain.DailyLog{}, false
	}
	log, err := s.logs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.DailyLog{}, false
	}
	if !currentUser(r).CanAccessDriver(log.DriverID) {
		writeForbidden(w)
		return domain.DailyLog{}, false
	}
	return log, true
}

// getDailyLog handles GET /daily-logs/{id}.
func (s *Server) getDailyLog(w http.ResponseWriter, r *http.Request) {
	log, ok := s.ownedDailyLog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// updateDailyLog handles PUT /daily-logs/{id}.
func (s *Server) updateDailyLog(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedDailyLog(w, r)
	if !ok {
		return
	}
	var req dailyLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	updated, err := s.logs.Update(r.Context(), dailyLogFromRequest(req, existing.DriverID, existing.ID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteDailyLog handles DELETE /daily-logs/{id}.
func (s *Server) deleteDailyLog(w http.ResponseWriter, r *http.Request) {
	log, ok := s.ownedDailyLog(w, r)
	if !ok {
		return
	}
	if err := s.logs.Delete(r.Context(), log.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dailyLogFromRequest(req dailyLogRequest, driverID, id uuid.UUID) domain.DailyLog {
	return domain.DailyLog{
		ID:            id,
		DriverID:      driverID,
		Date:          req.Date.Time,
		OdoStart:      req.OdoStart,
		OdoEnd:        req.OdoEnd,
		MinutesDriven: req.MinutesDriven,
		TotalEarned:   req.TotalEarned,
		Platform:      req.Platform,
		TripsCount:    req.TripsCount,
	}
}
