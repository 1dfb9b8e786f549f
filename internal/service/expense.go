package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

// ExpenseService implements business logic for expense records.
type ExpenseService struct {
	repo repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repo.
func NewExpenseService(r repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{repo: r}
}

func validateExpense(expense domain.Expense) error {
	if expense.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if expense.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", domain.ErrValidation)
	}
	return nil
}

// Create validates and persists a new expense. The category is stored
// trimmed but otherwise as entered; reporting handles case-insensitive
// category matching.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}
	expense.Category = strings.TrimSpace(expense.Category)

	result, err := s.repo.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single expense by ID.
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the most recent expenses for the given drivers, newest
// first. Empty driverIDs means no driver filter. limit <= 0 means no limit.
func (s *ExpenseService) List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Expense, error) {
	expenses, err := s.repo.ListByDrivers(ctx, driverIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Update validates and updates an existing expense.
func (s *ExpenseService) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}
	expense.Category = strings.TrimSpace(expense.Category)

	result, err := s.repo.Update(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}
