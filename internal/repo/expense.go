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

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error)

	// ListByDrivers returns the most recent expenses for the given drivers,
	// ordered by date descending. Empty driverIDs means no filter.
	ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error)

	// ListInRange returns expenses whose date falls in [start, endExclusive).
	ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Expense, error)

	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, driver_id, date, category, amount, notes, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (driver_id, date, category, amount, notes)
		VALUES (@driver_id, @date, @category, @amount, @notes)
		RETURNING ` + expenseColumns

	row := r.db.QueryRow(ctx, q, expenseArgs(expense))
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByDrivers(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error) {
	q := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[])
		ORDER BY date DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	expenses, err := r.queryExpenses(ctx, q, pgx.NamedArgs{"driver_ids": driverIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByDrivers: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) ListInRange(ctx context.Context, driverIDs []uuid.UUID, start, endExclusive time.Time) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE (cardinality(@driver_ids::uuid[]) = 0 OR driver_id = ANY(@driver_ids::uuid[]))
		  AND date >= @start
		  AND date < @end_exclusive
		ORDER BY date ASC`

	expenses, err := r.queryExpenses(ctx, q, pgx.NamedArgs{
		"driver_ids":    driverIDs,
		"start":         start,
		"end_exclusive": endExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListInRange: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET driver_id  = @driver_id,
		    date       = @date,
		    category   = @category,
		    amount     = @amount,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + expenseColumns

	args := expenseArgs(expense)
	args["id"] = expense.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) queryExpenses(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return expenses, nil
}

func expenseArgs(expense domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"driver_id": expense.DriverID,
		"date":      expense.Date,
		"category":  expense.Category,
		"amount":    expense.Amount,
		"notes":     expense.Notes,
	}
}

func scanExpense(s scanner) (domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(
		&e.ID, &e.DriverID, &e.Date, &e.Category, &e.Amount, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}
	return e, nil
}
