package service

import (
	"context"
	"fmt"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type DashboardService interface {
	Counts(ctx context.Context) (models.Dashboard, error)
}

type dashboardService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewDashboardService(stg storage.IStorage, log logger.ILogger) DashboardService {
	return &dashboardService{stg: stg, log: log}
}

// Counts fills everything but NumVisits, which lives in the session.
func (s *dashboardService) Counts(ctx context.Context) (models.Dashboard, error) {
	var (
		d   models.Dashboard
		err error
	)
	if d.NumDrivers, err = s.stg.Driver().Count(ctx); err != nil {
		return d, fmt.Errorf("count drivers: %w", err)
	}
	if d.NumCars, err = s.stg.Car().Count(ctx); err != nil {
		return d, fmt.Errorf("count cars: %w", err)
	}
	if d.NumManufacturers, err = s.stg.Manufacturer().Count(ctx); err != nil {
		return d, fmt.Errorf("count manufacturers: %w", err)
	}
	return d, nil
}
