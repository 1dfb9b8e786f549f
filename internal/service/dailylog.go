package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/report"
	"github.com/pmartell/driveledger/internal/repo"
)

// DailyLogService implements business logic for daily shift summaries.
type DailyLogService struct {
	repo repo.DailyLogRepo
}

// NewDailyLogService constructs a DailyLogService backed by the provided repo.
func NewDailyLogService(r repo.DailyLogRepo) *DailyLogService {
	return &DailyLogService{repo: r}
}

func validateDailyLog(log domain.DailyLog) error {
	if log.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if log.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if log.OdoStart < 0 || log.OdoEnd < 0 {
		return fmt.Errorf("%w: odometer readings must be non-negative", domain.ErrValidation)
	}
	if log.MinutesDriven < 0 {
		return fmt.Errorf("%w: minutes_driven must be non-negative", domain.ErrValidation)
	}
	if log.TotalEarned < 0 {
		return fmt.Errorf("%w: total_earned must be non-negative", domain.ErrValidation)
	}
	if log.TripsCount != nil && *log.TripsCount < 0 {
		return fmt.Errorf("%w: trips_count must be non-negative", domain.ErrValidation)
	}
	return nil
}

// Create validates and persists a new daily log. The date is truncated to
// midnight UTC so that two logs entered with different times on the same
// calendar day shadow the same trips.
func (s *DailyLogService) Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	if err := validateDailyLog(log); err != nil {
		return domain.DailyLog{}, err
	}
	log.Date = report.DateOf(log.Date)

	result, err := s.repo.Create(ctx, log)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.DailyLogService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single daily log by ID.
func (s *DailyLogService) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.DailyLogService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the most recent daily logs for the given drivers, newest
// first. Empty driverIDs means no driver filter. limit <= 0 means no limit.
func (s *DailyLogService) List(ctx context.Context, driverIDs []uuid.UUID, limit int) ([]domain.DailyLog, error) {
	logs, err := s.repo.ListByDrivers(ctx, driverIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("service.DailyLogService.List: %w", err)
	}
	if logs == nil {
		return []domain.DailyLog{}, nil
	}
	return logs, nil
}

// Update validates and updates an existing daily log.
func (s *DailyLogService) Update(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	if err := validateDailyLog(log); err != nil {
		return domain.DailyLog{}, err
	}
	log.Date = report.DateOf(log.Date)

	result, err := s.repo.Update(ctx, log)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.DailyLogService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a daily log.
func (s *DailyLogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DailyLogService.Delete: %w", err)
	}
	return nil
}
