package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// report handles GET /reports?start=&end=&driver_id=. start and end are
// date-only values ("2006-01-02") and the range is inclusive of both days.
func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}
	start, ok := dateQueryParam(w, r, "start")
	if !ok {
		return
	}
	end, ok := dateQueryParam(w, r, "end")
	if !ok {
		return
	}

	result, err := s.reports.Build(r.Context(), driverIDs, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// dashboard handles GET /dashboard?driver_id=. All-time totals for the
// caller's visible driver set.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}

	totals, err := s.reports.Dashboard(r.Context(), driverIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// dateQueryParam parses a required date-only query parameter. ok is false
// when a response has already been written.
func dateQueryParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeRequestError(w, name+" is required")
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(openapi_types.DateFormat, raw, time.UTC)
	if err != nil {
		writeRequestError(w, name+" must be a date in 2006-01-02 form")
		return time.Time{}, false
	}
	return parsed, true
}
