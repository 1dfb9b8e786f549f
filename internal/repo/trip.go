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

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByDrivers returns the most recent trips for the given drivers,
	// ordered by occurred_at descending. An empty driverIDs slice means no
	// driver filter (admin view). limit caps the result; <=0 means no cap.
	ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error)

	// ListInRange returns trips for the given drivers whose timestamp falls
	// in [start, endExclusive), ordered by occurred_at ascending. Range
	// bounds are day-normalized by the caller.
	ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Trip, error)

	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, driver_id, vehicle_id, occurred_at, platform, fare, tip, bonus, miles, duration_minutes, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (driver_id, vehicle_id, occurred_at, platform, fare, tip, bonus, miles, duration_minutes)
		VALUES (@driver_id, @vehicle_id, @occurred_at, @platform, @fare, @tip, @bonus, @miles, @duration_minutes)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error) {
	// cardinality(@driver_ids) = 0 disables the filter for the admin view.
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[])
		ORDER BY occurred_at DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"driver_ids": driverIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDrivers: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE (cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[]))
		  AND occurred_at >= @start
		  AND occurred_at < @end_exclusive
		ORDER BY occurred_at ASC`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{
		"driver_ids":    driverIDs,
		"start":         start,
		"end_exclusive": endExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListInRange: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET driver_id        = @driver_id,
		    vehicle_id       = @vehicle_id,
		    occurred_at      = @occurred_at,
		    platform         = @platform,
		    fare             = @fare,
		    tip              = @tip,
		    bonus            = @bonus,
		    miles            = @miles,
		    duration_minutes = @duration_minutes,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"driver_id":        trip.DriverID,
		"vehicle_id":       trip.VehicleID, // nil becomes NULL
		"occurred_at":      trip.OccurredAt,
		"platform":         trip.Platform,
		"fare":             trip.Fare,
		"tip":              trip.Tip,
		"bonus":            trip.Bonus,
		"miles":            trip.Miles,
		"duration_minutes": trip.DurationMinutes,
	}
}

func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(
		&t.ID, &t.DriverID, &t.VehicleID, &t.OccurredAt, &t.Platform,
		&t.Fare, &t.Tip, &t.Bonus, &t.Miles, &t.DurationMinutes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return t, nil
}
