package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
)

// setupRequest is the body for POST /setup. DriverName is optional; when
// set, a driver profile is created and linked to the new admin account.
type setupRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DriverName string `json:"driver_name,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse carries the signed token plus the account it belongs to.
type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type createUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	DriverID *uuid.UUID `json:"driver_id,omitempty"`
	IsAdmin  bool       `json:"is_admin"`
}

// setupStatus handles GET /setup. The frontend probes it to decide whether
// to show the first-run screen or the login form.
func (s *Server) setupStatus(w http.ResponseWriter, r *http.Request) {
	open, err := s.auth.SetupOpen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// setup handles POST /setup. Creates the initial admin account; conflicts
// once any account exists.
func (s *Server) setup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	user, token, err := s.auth.Setup(r.Context(), req.Username, req.Password, req.DriverName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// login handles POST /login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// me handles GET /me. Returns the account resolved by the auth middleware.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

// requireAdmin writes 403 and returns false for non-admin callers.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !currentUser(r).IsAdmin {
		writeForbidden(w)
		return false
	}
	return true
}

// listUsers handles GET /users. Admin only.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	users, err := s.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// createUser handles POST /users. Admin only.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid JSON body")
		return
	}

	user, err := s.auth.CreateUser(r.Context(), req.Username, req.Password, req.DriverID, req.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// deleteUser handles DELETE /users/{id}. Admin only; admins cannot delete
// their own account, which would otherwise allow locking everyone out.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if id == currentUser(r).ID {
		writeRequestError(w, "cannot delete your own account")
		return
	}
	if err := s.auth.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
