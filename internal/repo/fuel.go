package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pmartell/driveledger/internal/domain"
)

// FuelRepo defines the persistence operations for Fuel fill-ups.
type FuelRepo interface {
	Create(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Fuel, error)

	// ListByDrivers returns the most recent fill-ups for the given drivers,
	// ordered by filled_at descending. Empty driverIDs means no filter.
	ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error)

	// ListInRange returns fill-ups whose timestamp falls in [start, endExclusive).
	ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Fuel, error)

	// ListByVehicle returns all fill-ups for one vehicle ordered by
	// (filled_at, id) ascending — the order the fuel economy calculator
	// consumes them in.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Fuel, error)

	Update(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgFuelRepo struct {
	db db
}

// NewFuelRepo constructs a FuelRepo backed by the provided db connection.
func NewFuelRepo(db db) FuelRepo {
	return &pgFuelRepo{db: db}
}

const fuelColumns = `id, driver_id, vehicle_id, filled_at, odometer, gallons, total_paid, vendor, notes, created_at, updated_at`

func (r *pgFuelRepo) Create(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error) {
	const q = `
		INSERT INTO fuel_logs (driver_id, vehicle_id, filled_at, odometer, gallons, total_paid, vendor, notes)
		VALUES (@driver_id, @vehicle_id, @filled_at, @odometer, @gallons, @total_paid, @vendor, @notes)
		RETURNING ` + fuelColumns

	row := r.db.QueryRow(ctx, q, fuelArgs(fuel))
	result, err := scanFuel(row)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("repo.FuelRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFuelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Fuel, error) {
	const q = `SELECT ` + fuelColumns + ` FROM fuel_logs WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanFuel(row)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("repo.FuelRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgFuelRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error) {
	q := `
		SELECT ` + fuelColumns + `
		FROM fuel_logs
		WHERE cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[])
		ORDER BY filled_at DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	fuels, err := r.queryFuels(ctx, q, pgx.NamedArgs{"driver_ids": driverIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelRepo.ListByDrivers: %w", err)
	}
	return fuels, nil
}

func (r *pgFuelRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Fuel, error) {
	const q = `
		SELECT ` + fuelColumns + `
		FROM fuel_logs
		WHERE (cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[]))
		  AND filled_at >= @start
		  AND filled_at < @end_exclusive
		ORDER BY filled_at ASC`

	fuels, err := r.queryFuels(ctx, q, pgx.NamedArgs{
		"driver_ids":    driverIDs,
		"start":         start,
		"end_exclusive": endExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelRepo.ListInRange: %w", err)
	}
	return fuels, nil
}

func (r *pgFuelRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Fuel, error) {
	const q = `
		SELECT ` + fuelColumns + `
		FROM fuel_logs
		WHERE vehicle_id = @vehicle_id
		ORDER BY filled_at ASC, id ASC`

	fuels, err := r.queryFuels(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelRepo.ListByVehicle: %w", err)
	}
	return fuels, nil
}

func (r *pgFuelRepo) Update(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error) {
	const q = `
		UPDATE fuel_logs
		SET driver_id  = @driver_id,
		    vehicle_id = @vehicle_id,
		    filled_at  = @filled_at,
		    odometer   = @odometer,
		    gallons    = @gallons,
		    total_paid = @total_paid,
		    vendor     = @vendor,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + fuelColumns

	args := fuelArgs(fuel)
	args["id"] = fuel.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanFuel(row)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("repo.FuelRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgFuelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM fuel_logs WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FuelRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FuelRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgFuelRepo) queryFuels(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Fuel, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fuels []domain.Fuel
	for rows.Next() {
		f, err := scanFuel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		fuels = append(fuels, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return fuels, nil
}

func fuelArgs(fuel domain.Fuel) pgx.NamedArgs {
	return pgx.NamedArgs{
		"driver_id":  fuel.DriverID,
		"vehicle_id": fuel.VehicleID, // nil becomes NULL
		"filled_at":  fuel.FilledAt,
		"odometer":   fuel.Odometer,
		"gallons":    fuel.Gallons,
		"total_paid": fuel.TotalPaid,
		"vendor":     fuel.Vendor,
		"notes":      fuel.Notes,
	}
}

func scanFuel(s scanner) (domain.Fuel, error) {
	var f domain.Fuel
	err := s.Scan(
		&f.ID, &f.DriverID, &f.VehicleID, &f.FilledAt, &f.Odometer,
		&f.Gallons, &f.TotalPaid, &f.Vendor, &f.Notes,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Fuel{}, domain.ErrNotFound
		}
		return domain.Fuel{}, err
	}
	return f, nil
}
