package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pmartell/driveledger/internal/domain"
)

// DriverRepo defines the persistence operations for Drivers.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type DriverRepo interface {
	Create(ctx context.Context, driver domain.Driver) (domain.Driver, error)

	// GetByID returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// List returns all drivers ordered by name ascending.
	List(ctx context.Context) ([]domain.Driver, error)

	Update(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

func (r *pgDriverRepo) Create(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	const q = `
		INSERT INTO drivers (name)
		VALUES (@name)
		RETURNING id, name, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": driver.Name})
	result, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `
		SELECT id, name, created_at, updated_at
		FROM drivers
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	const q = `
		SELECT id, name, created_at, updated_at
		FROM drivers
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}
	return drivers, nil
}

func (r *pgDriverRepo) Update(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	const q = `
		UPDATE drivers
		SET name = @name, updated_at = now()
		WHERE id = @id
		RETURNING id, name, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": driver.ID, "name": driver.Name})
	result, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM drivers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DriverRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DriverRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var d domain.Driver
	err := s.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}
	return d, nil
}
