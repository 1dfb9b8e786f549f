package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

// VehicleService implements business logic for Vehicle operations.
// It holds the driver repo as well because creating a vehicle requires
// verifying the owning driver exists.
type VehicleService struct {
	vehicles repo.VehicleRepo
	drivers  repo.DriverRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repos.
func NewVehicleService(vehicles repo.VehicleRepo, drivers repo.DriverRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles, drivers: drivers}
}

// Create validates the vehicle, verifies the owning driver exists, then
// persists. When the new vehicle is flagged default it is promoted via
// SetDefault so any existing default is unset.
func (s *VehicleService) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if strings.TrimSpace(vehicle.Name) == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, err := s.drivers.GetByID(ctx, vehicle.DriverID); err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}

	makeDefault := vehicle.IsDefault
	vehicle.IsDefault = false

	result, err := s.vehicles.Create(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	if makeDefault {
		if err := s.vehicles.SetDefault(ctx, result.DriverID, result.ID); err != nil {
			return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
		}
		result.IsDefault = true
	}
	return result, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// ListByDriver returns the driver's vehicles, default first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.ListByDriver: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Update renames a vehicle. Ownership and the default flag are managed via
// SetDefault, not Update.
func (s *VehicleService) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if strings.TrimSpace(vehicle.Name) == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.vehicles.Update(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle. Trips and fuel logs that referenced it keep
// their data with the reference nulled out (FK ON DELETE SET NULL).
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

// SetDefault makes vehicleID the driver's default vehicle. The vehicle must
// belong to the driver — the repo statement only touches the driver's rows,
// so a foreign vehicle ID would silently clear the default otherwise.
func (s *VehicleService) SetDefault(ctx context.Context, driverID, vehicleID uuid.UUID) error {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("service.VehicleService.SetDefault: %w", err)
	}
	if vehicle.DriverID != driverID {
		return fmt.Errorf("service.VehicleService.SetDefault: %w: vehicle belongs to another driver", domain.ErrValidation)
	}
	if err := s.vehicles.SetDefault(ctx, driverID, vehicleID); err != nil {
		return fmt.Errorf("service.VehicleService.SetDefault: %w", err)
	}
	return nil
}
