// Package main is the entry point for the Drive Ledger API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/pmartell/driveledger/internal/config"
	"github.com/pmartell/driveledger/internal/handler"
	"github.com/pmartell/driveledger/internal/middleware"
	"github.com/pmartell/driveledger/internal/repo"
	"github.com/pmartell/driveledger/internal/service"
	"github.com/pmartell/driveledger/migrations"
)

// maxBodyBytes caps request bodies well above any legitimate record payload.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	// goose needs database/sql, not a pgx pool; open a short-lived *sql.DB
	// just for schema bootstrap.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database schema up to date")

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repos ------------------------------------------------------------
	drivers := repo.NewDriverRepo(pool)
	vehicles := repo.NewVehicleRepo(pool)
	trips := repo.NewTripRepo(pool)
	dailyLogs := repo.NewDailyLogRepo(pool)
	expenses := repo.NewExpenseRepo(pool)
	fuels := repo.NewFuelRepo(pool)
	users := repo.NewUserRepo(pool)

	// --- Services ---------------------------------------------------------
	authSvc := service.NewAuthService(users, drivers, []byte(cfg.JWTSecret))
	driverSvc := service.NewDriverService(drivers)
	vehicleSvc := service.NewVehicleService(vehicles, drivers)
	tripSvc := service.NewTripService(trips)
	dailyLogSvc := service.NewDailyLogService(dailyLogs)
	expenseSvc := service.NewExpenseService(expenses)
	fuelSvc := service.NewFuelService(fuels, vehicles)
	reportSvc := service.NewReportService(dailyLogs, trips, expenses, fuels, cfg.MileageRates)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap. Bearer-token auth is applied per route group inside Routes.
	srvHandlers := handler.NewServer(
		authSvc, driverSvc, vehicleSvc, tripSvc,
		dailyLogSvc, expenseSvc, fuelSvc, reportSvc,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", srvHandlers.Routes(middleware.NewAuth(authSvc)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all embedded goose migrations to the target database.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
