// Package handler implements the HTTP layer for Drive Ledger.
// All handlers are methods on Server, split into domain-specific files
// (trip.go, report.go, etc.) but sharing the same struct so they can reach
// its dependencies. Handlers decode JSON, enforce per-driver access, call
// the service layer, and map sentinel errors to HTTP status codes — no
// business logic lives here.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/middleware"
)

// The service interfaces are defined here, in the consumer package, per the
// "accept interfaces, return concrete types" convention. Handler tests
// inject hand-written mocks; main.go passes the concrete services.

// AuthServicer covers account management and login.
type AuthServicer interface {
	SetupOpen(ctx context.Context) (bool, error)
	Setup(ctx context.Context, username, password, driverName string) (domain.User, string, error)
	Login(ctx context.Context, username, password string) (domain.User, string, error)
	CreateUser(ctx context.Context, username, password string, driverID *uuid.UUID, isAdmin bool) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// DriverServicer covers driver profile CRUD.
type DriverServicer interface {
	Create(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	List(ctx context.Context) ([]domain.Driver, error)
	Update(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VehicleServicer covers vehicle CRUD and the default-vehicle rule.
type VehicleServicer interface {
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, driverID, vehicleID uuid.UUID) error
}

// TripServicer covers per-trip earnings records.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DailyLogServicer covers per-day shift summaries.
type DailyLogServicer interface {
	Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error)
	List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.DailyLog, error)
	Update(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseServicer covers non-fuel expense records.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error)
	List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FuelServicer covers fill-up records and the per-vehicle economy query.
type FuelServicer interface {
	Create(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fuel, error)
	List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error)
	Update(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	EconomyForVehicle(ctx context.Context, vehicleID uuid.UUID) (domain.FuelEconomy, error)
}

// ReportServicer covers the earnings/tax report and the dashboard summary.
type ReportServicer interface {
	Build(ctx context.Context, driverIDs []uuid.UUID, start, end time.Time) (domain.Report, error)
	Dashboard(ctx context.Context, driverIDs []uuid.UUID) (domain.DashboardTotals, error)
}

// Server holds every handler dependency. Methods live in per-resource files.
type Server struct {
	auth     AuthServicer
	drivers  DriverServicer
	vehicles VehicleServicer
	trips    TripServicer
	logs     DailyLogServicer
	expenses ExpenseServicer
	fuels    FuelServicer
	reports  ReportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	auth AuthServicer,
	drivers DriverServicer,
	vehicles VehicleServicer,
	trips TripServicer,
	logs DailyLogServicer,
	expenses ExpenseServicer,
	fuels FuelServicer,
	reports ReportServicer,
) *Server {
	return &Server{
		auth:     auth,
		drivers:  drivers,
		vehicles: vehicles,
		trips:    trips,
		logs:     logs,
		expenses: expenses,
		fuels:    fuels,
		reports:  reports,
	}
}

// Routes mounts every endpoint on a fresh chi router. authmw must be the
// bearer-token middleware (middleware.NewAuth); it wraps everything except
// health, first-run setup, and login.
func (s *Server) Routes(authmw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Get("/setup", s.setupStatus)
	r.Post("/setup", s.setup)
	r.Post("/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(authmw)

		r.Get("/me", s.me)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)
			r.Delete("/{id}", s.deleteUser)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", s.listDrivers)
			r.Post("/", s.createDriver)
			r.Get("/{id}", s.getDriver)
			r.Put("/{id}", s.updateDriver)
			r.Delete("/{id}", s.deleteDriver)
			r.Get("/{id}/vehicles", s.listVehicles)
			r.Post("/{id}/vehicles", s.createVehicle)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/{id}", s.getVehicle)
			r.Put("/{id}", s.updateVehicle)
			r.Delete("/{id}", s.deleteVehicle)
			r.Put("/{id}/default", s.setDefaultVehicle)
			r.Get("/{id}/economy", s.vehicleEconomy)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.listTrips)
			r.Post("/", s.createTrip)
			r.Get("/{id}", s.getTrip)
			r.Put("/{id}", s.updateTrip)
			r.Delete("/{id}", s.deleteTrip)
		})

		r.Route("/daily-logs", func(r chi.Router) {
			r.Get("/", s.listDailyLogs)
			r.Post("/", s.createDailyLog)
			r.Get("/{id}", s.getDailyLog)
			r.Put("/{id}", s.updateDailyLog)
			r.Delete("/{id}", s.deleteDailyLog)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.listExpenses)
			r.Post("/", s.createExpense)
			r.Get("/{id}", s.getExpense)
			r.Put("/{id}", s.updateExpense)
			r.Delete("/{id}", s.deleteExpense)
		})

		r.Route("/fuel", func(r chi.Router) {
			r.Get("/", s.listFuel)
			r.Post("/", s.createFuel)
			r.Get("/{id}", s.getFuel)
			r.Put("/{id}", s.updateFuel)
			r.Delete("/{id}", s.deleteFuel)
		})

		r.Get("/dashboard", s.dashboard)
		r.Get("/reports", s.report)
	})

	return r
}

// health handles GET /healthz. Returns 200 while the process is up; DB
// reachability is checked at startup, not per probe.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware. Routes registered outside the auth group must not call it.
func currentUser(r *http.Request) domain.User {
	user, _ := middleware.UserFromContext(r.Context())
	return user
}

// visibleDriverIDs resolves the driver scope for list/report requests.
// Admins see all drivers (nil scope) unless they narrow with ?driver_id=;
// other users are pinned to their linked driver regardless of the query.
// ok is false when a response has already been written.
func visibleDriverIDs(w http.ResponseWriter, r *http.Request) ([]uuid.UUID, bool) {
	user := currentUser(r)

	if raw := r.URL.Query().Get("driver_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeRequestError(w, "driver_id must be a valid UUID")
			return nil, false
		}
		if !user.CanAccessDriver(id) {
			writeForbidden(w)
			return nil, false
		}
		return []uuid.UUID{id}, true
	}

	if user.IsAdmin {
		return nil, true
	}
	if user.DriverID == nil {
		// An account with no driver profile has no records of its own.
		return []uuid.UUID{uuid.Nil}, true
	}
	return []uuid.UUID{*user.DriverID}, true
}

// resolveDriverID decides which driver a new record belongs to. A request
// may name a driver explicitly; otherwise it defaults to the caller's linked
// driver. Either way the caller must have access to it. ok is false when a
// response has already been written.
func resolveDriverID(w http.ResponseWriter, r *http.Request, requested *uuid.UUID) (uuid.UUID, bool) {
	user := currentUser(r)

	id := requested
	if id == nil {
		id = user.DriverID
	}
	if id == nil {
		writeRequestError(w, "driver_id is required")
		return uuid.Nil, false
	}
	if !user.CanAccessDriver(*id) {
		writeForbidden(w)
		return uuid.Nil, false
	}
	return *id, true
}

// limitParam parses the optional ?limit= query parameter. 0 means no limit.
func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeRequestError(w, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

// idParam parses the {id} URL parameter. ok is false when a response has
// already been written.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeRequestError(w, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
