package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/report"
	"github.com/pmartell/driveledger/internal/repo"
)

// FuelService implements business logic for fuel fill-up records.
type FuelService struct {
	fuels    repo.FuelRepo
	vehicles repo.VehicleRepo
}

// NewFuelService constructs a FuelService backed by the provided repos.
func NewFuelService(fuels repo.FuelRepo, vehicles repo.VehicleRepo) *FuelService {
	return &FuelService{fuels: fuels, vehicles: vehicles}
}

func validateFuel(fuel domain.Fuel) error {
	if fuel.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if fuel.FilledAt.IsZero() {
		return fmt.Errorf("%w: filled_at is required", domain.ErrValidation)
	}
	if fuel.Odometer < 0 {
		return fmt.Errorf("%w: odometer must be non-negative", domain.ErrValidation)
	}
	if fuel.Gallons < 0 {
		return fmt.Errorf("%w: gallons must be non-negative", domain.ErrValidation)
	}
	if fuel.TotalPaid < 0 {
		return fmt.Errorf("%w: total_paid must be non-negative", domain.ErrValidation)
	}
	return nil
}

// Create validates and persists a new fill-up.
func (s *FuelService) Create(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error) {
	if err := validateFuel(fuel); err != nil {
		return domain.Fuel{}, err
	}
	result, err := s.fuels.Create(ctx, fuel)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single fill-up by ID.
func (s *FuelService) GetByID(ctx context.Context, id uuid.UUID) (domain.Fuel, error) {
	result, err := s.fuels.GetByID(ctx, id)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("service.FuelService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the most recent fill-ups for the given drivers, newest
// first. Empty driverIDs means no driver filter. limit <= 0 means no limit.
func (s *FuelService) List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Fuel, error) {
	fuels, err := s.fuels.ListByDrivers(ctx, driverIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("service.FuelService.List: %w", err)
	}
	if fuels == nil {
		return []domain.Fuel{}, nil
	}
	return fuels, nil
}

// Update validates and updates an existing fill-up.
func (s *FuelService) Update(ctx context.Context, fuel domain.Fuel) (domain.Fuel, error) {
	if err := validateFuel(fuel); err != nil {
		return domain.Fuel{}, err
	}
	result, err := s.fuels.Update(ctx, fuel)
	if err != nil {
		return domain.Fuel{}, fmt.Errorf("service.FuelService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a fill-up.
func (s *FuelService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.fuels.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FuelService.Delete: %w", err)
	}
	return nil
}

// EconomyForVehicle computes the fuel economy history for one vehicle from
// its full fill-up history. Returns ErrNotFound when the vehicle does not
// exist.
func (s *FuelService) EconomyForVehicle(ctx context.Context, vehicleID uuid.UUID) (domain.FuelEconomy, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return domain.FuelEconomy{}, fmt.Errorf("service.FuelService.EconomyForVehicle: %w", err)
	}
	fuels, err := s.fuels.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return domain.FuelEconomy{}, fmt.Errorf("service.FuelService.EconomyForVehicle: %w", err)
	}
	return report.FuelEconomy(fuels), nil
}
