package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/repo"
)

// TripService implements business logic for per-trip earnings records.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

func validateTrip(trip domain.Trip) error {
	if trip.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if trip.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at is required", domain.ErrValidation)
	}
	if trip.Fare < 0 || trip.Tip < 0 || trip.Bonus < 0 {
		return fmt.Errorf("%w: fare, tip and bonus must be non-negative", domain.ErrValidation)
	}
	if trip.Miles < 0 {
		return fmt.Errorf("%w: miles must be non-negative", domain.ErrValidation)
	}
	if trip.DurationMinutes != nil && *trip.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration_minutes must be non-negative", domain.ErrValidation)
	}
	return nil
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the most recent trips for the given drivers, newest first.
// Empty driverIDs means no driver filter (admin view). limit <= 0 means
// no limit.
func (s *TripService) List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.Trip, error) {
	trips, err := s.repo.ListByDrivers(ctx, driverIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
