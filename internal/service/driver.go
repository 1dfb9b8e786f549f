// Package service contains the business logic for Drive Ledger.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

// DriverService implements business logic for Driver operations.
type DriverService struct {
	repo repo.DriverRepo
}

// NewDriverService constructs a DriverService backed by the provided DriverRepo.
func NewDriverService(r repo.DriverRepo) *DriverService {
	return &DriverService{repo: r}
}

// Create validates and persists a new driver.
func (s *DriverService) Create(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	if strings.TrimSpace(driver.Name) == "" {
		return domain.Driver{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.Create(ctx, driver)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single driver by ID.
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all drivers ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DriverService) List(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DriverService.List: %w", err)
	}
	if drivers == nil {
		return []domain.Driver{}, nil
	}
	return drivers, nil
}

// Update validates and updates an existing driver.
func (s *DriverService) Update(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	if strings.TrimSpace(driver.Name) == "" {
		return domain.Driver{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.Update(ctx, driver)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a driver and, via FK cascade, all of its records.
func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DriverService.Delete: %w", err)
	}
	return nil
}
