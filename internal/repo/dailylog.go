package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmartell/driveledger/internal/domain"
)

// DailyLogRepo defines the persistence operations for DailyLogs.
type DailyLogRepo interface {
	Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error)

	// ListByDrivers returns the most recent logs for the given drivers,
	// ordered by date descending. Empty driverIDs means no filter.
	ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.DailyLog, error)

	// ListInRange returns logs whose date falls in [start, endExclusive).
	ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.DailyLog, error)

	Update(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgDailyLogRepo struct {
	db db
}

// NewDailyLogRepo constructs a DailyLogRepo backed by the provided db connection.
func NewDailyLogRepo(db db) DailyLogRepo {
	return &pgDailyLogRepo{db: db}
}

const dailyLogColumns = `id, driver_id, date, odo_start, odo_end, minutes_driven, total_earned, platform, trips_count, created_at, updated_at`

func (r *pgDailyLogRepo) Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	const q = `
		INSERT INTO daily_logs (driver_id, date, odo_start, odo_end, minutes_driven, total_earned, platform, trips_count)
		VALUES (@driver_id, @date, @odo_start, @odo_end, @minutes_driven, @total_earned, @platform, @trips_count)
		RETURNING ` + dailyLogColumns

	row := r.db.QueryRow(ctx, q, dailyLogArgs(log))
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	const q = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.DailyLog, error) {
	q := `
		SELECT ` + dailyLogColumns + `
		FROM daily_logs
		WHERE cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[])
		ORDER BY date DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	logs, err := r.queryDailyLogs(ctx, q, pgx.NamedArgs{"driver_ids": driverIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListByDrivers: %w", err)
	}
	return logs, nil
}

func (r *pgDailyLogRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.DailyLog, error) {
	const q = `
		SELECT ` + dailyLogColumns + `
		FROM daily_logs
		WHERE (cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[]))
		  AND date >= @start
		  AND date < @end_exclusive
		ORDER BY date ASC`

	logs, err := r.queryDailyLogs(ctx, q, pgx.NamedArgs{
		"driver_ids":    driverIDs,
		"start":         start,
		"end_exclusive": endExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListInRange: %w", err)
	}
	return logs, nil
}

func (r *pgDailyLogRepo) Update(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	const q = `
		UPDATE daily_logs
		SET driver_id      = @driver_id,
		    date           = @date,
		    odo_start      = @odo_start,
		    odo_end        = @odo_end,
		    minutes_driven = @minutes_driven,
		    total_earned   = @total_earned,
		    platform       = @platform,
		    trips_count    = @trips_count,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + dailyLogColumns

	args := dailyLogArgs(log)
	args["id"] = log.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM daily_logs WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DailyLogRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DailyLogRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDailyLogRepo) queryDailyLogs(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.DailyLog, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return logs, nil
}

func dailyLogArgs(log domain.DailyLog) pgx.NamedArgs {
	return pgx.NamedArgs{
		"driver_id":      log.DriverID,
		"date":           log.Date,
		"odo_start":      log.OdoStart,
		"odo_end":        log.OdoEnd,
		"minutes_driven": log.MinutesDriven,
		"total_earned":   log.TotalEarned,
		"platform":       log.Platform,
		"trips_count":    log.TripsCount,
	}
}

func scanDailyLog(s scanner) (domain.DailyLog, error) {
	var (
		l    domain.DailyLog
		date pgtype.Date
	)
	err := s.Scan(
		&l.ID, &l.DriverID, &date, &l.OdoStart, &l.OdoEnd,
		&l.MinutesDriven, &l.TotalEarned, &l.Platform, &l.TripsCount,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyLog{}, domain.ErrNotFound
		}
		return domain.DailyLog{}, err
	}
	l.Date = date.Time
	return l, nil
}
