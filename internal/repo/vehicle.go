package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pmartell/driveledger/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// ListByDriver returns the driver's vehicles, default first then by name.
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error)

	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDefault marks vehicleID as the driver's default and unsets every
	// other vehicle of the same driver in a single statement, preserving the
	// at-most-one-default invariant. Returns domain.ErrNotFound when the
	// vehicle does not belong to the driver.
	SetDefault(ctx context.Context, driverID, vehicleID uuid.UUID) error
}

type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (driver_id, name, is_default)
		VALUES (@driver_id, @name, @is_default)
		RETURNING id, driver_id, name, is_default, created_at, updated_at`

	args := pgx.NamedArgs{
		"driver_id":  vehicle.DriverID,
		"name":       vehicle.Name,
		"is_default": vehicle.IsDefault,
	}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `
		SELECT id, driver_id, name, is_default, created_at, updated_at
		FROM vehicles
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error) {
	const q = `
		SELECT id, driver_id, name, is_default, created_at, updated_at
		FROM vehicles
		WHERE driver_id = @driver_id
		ORDER BY is_default DESC, name ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"driver_id": driverID})
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListByDriver: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.ListByDriver: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.ListByDriver: rows: %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET name = @name, updated_at = now()
		WHERE id = @id
		RETURNING id, driver_id, name, is_default, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": vehicle.ID, "name": vehicle.Name})
	result, err := scanVehicle(row)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vehicles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgVehicleRepo) SetDefault(ctx context.Context, driverID, vehicleID uuid.UUID) error {
	// Unset first, then set. A single UPDATE over all of the driver's rows
	// can trip the partial unique index mid-statement because row order is
	// unspecified.
	const unset = `
		UPDATE vehicles
		SET is_default = false, updated_at = now()
		WHERE driver_id = @driver_id AND is_default AND id <> @vehicle_id`

	const set = `
		UPDATE vehicles
		SET is_default = true, updated_at = now()
		WHERE driver_id = @driver_id AND id = @vehicle_id`

	args := pgx.NamedArgs{"driver_id": driverID, "vehicle_id": vehicleID}
	if _, err := r.db.Exec(ctx, unset, args); err != nil {
		return fmt.Errorf("repo.VehicleRepo.SetDefault: %w", err)
	}
	tag, err := r.db.Exec(ctx, set, args)
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.SetDefault: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.SetDefault: %w", domain.ErrNotFound)
	}
	return nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := s.Scan(&v.ID, &v.DriverID, &v.Name, &v.IsDefault, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vehicle{}, domain.ErrNotFound
		}
		return domain.Vehicle{}, err
	}
	return v, nil
}
