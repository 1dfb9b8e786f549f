package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pmartell/driveledger/internal/domain"
)

// expenseRequest is the body for POST /expenses and PUT /expenses/{id}.
type expenseRequest struct {
	DriverID *uuid.UUID         `json:"driver_id,omitempty"`
	Date     openapi_types.Date `json:"date"`
	Category string             `json:"category"`
	Amount   float64            `json:"amount"`
	Notes    string             `json:"notes,omitempty"`
}

// listExpenses handles GET /expenses?limit=&driver_id=. Newest first.
func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	driverIDs, ok := visibleDriverIDs(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	expenses, err := s.expenses.List(r.Context(), driverIDs, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// createExpense handles POST /expenses.
func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}
	driverID, ok := resolveDriverID(w, r, req.DriverID)
	if !ok {
		return
	}

	expense, err := s.expenses.Create(r.Context(), expenseFromRequest(req, driverID, uuid.Nil))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// ownedExpense loads the expense and checks the caller may touch it.
func (s *Server) ownedExpense(w http.ResponseWriter, r *http.Request) (domain.Expense, bool) {
	id, ok := idParam(w, r)
	if !ok {
		return domain.Expense{}, false
	}
	expense, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return domain.Expense{}, false
	}
	if !currentUser(r).CanAccessDriver(expense.DriverID) {
		writeForbidden(w)
		return domain.Expense{}, false
	}
	return expense, true
}

// getExpense handles GET /expenses/{id}.
func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// updateExpense handles PUT /expenses/{id}.
func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	updated, err := s.expenses.Update(r.Context(), expenseFromRequest(req, existing.DriverID, existing.ID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteExpense handles DELETE /expenses/{id}.
func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expense, ok := s.ownedExpense(w, r)
	if !ok {
		return
	}
	if err := s.expenses.Delete(r.Context(), expense.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseFromRequest(req expenseRequest, driverID, id uuid.UUID) domain.Expense {
	return domain.Expense{
		ID:       id,
		DriverID: driverID,
		Date:     req.Date.Time,
		Category: req.Category,
		Amount:   req.Amount,
		Notes:    req.Notes,
	}
}
