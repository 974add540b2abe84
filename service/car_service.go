package service

import (
	"context"
	"fmt"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
	"taxifleet/storage"
)

type CarService interface {
	Create(ctx context.Context, in models.CarInput) (*models.Car, error)
	Update(ctx context.Context, id int64, in models.CarInput) (*models.Car, error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	List(ctx context.Context, page int) ([]*models.Car, pagination.Page, error)
	Delete(ctx context.Context, id int64) error
	AssignDriver(ctx context.Context, carID, driverID int64) error
	UnassignDriver(ctx context.Context, carID, driverID int64) error
}

type carService struct {
	stg storage.ICarStorage
	log logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		stg: stg.Car(),
		log: log,
	}
}

func (s *carService) Create(ctx context.Context, in models.CarInput) (*models.Car, error) {
	car, err := s.stg.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	s.log.Info("car created", logger.Int64("id", car.ID), logger.Int("drivers", len(in.DriverIDs)))
	return car, nil
}

func (s *carService) Update(ctx context.Context, id int64, in models.CarInput) (*models.Car, error) {
	car, err := s.stg.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update car %d: %w", id, err)
	}
	return car, nil
}

func (s *carService) Get(ctx context.Context, id int64) (*models.Car, error) {
	car, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	return car, nil
}

func (s *carService) List(ctx context.Context, page int) ([]*models.Car, pagination.Page, error) {
	total, err := s.stg.Count(ctx)
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("count cars: %w", err)
	}
	p := pagination.New(page, total, pagination.PerPage)
	cars, err := s.stg.List(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("list cars: %w", err)
	}
	return cars, p, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete car %d: %w", id, err)
	}
	s.log.Info("car deleted", logger.Int64("id", id))
	return nil
}

// AssignDriver adds the driver to the car. Repeating it changes nothing.
func (s *carService) AssignDriver(ctx context.Context, carID, driverID int64) error {
	if err := s.mustExist(ctx, carID); err != nil {
		return err
	}
	if err := s.stg.AssignDriver(ctx, carID, driverID); err != nil {
		return fmt.Errorf("assign driver %d to car %d: %w", driverID, carID, err)
	}
	return nil
}

// UnassignDriver removes the driver from the car; a missing pair is not an
// error.
func (s *carService) UnassignDriver(ctx context.Context, carID, driverID int64) error {
	if err := s.mustExist(ctx, carID); err != nil {
		return err
	}
	if err := s.stg.UnassignDriver(ctx, carID, driverID); err != nil {
		return fmt.Errorf("unassign driver %d from car %d: %w", driverID, carID, err)
	}
	return nil
}

func (s *carService) mustExist(ctx context.Context, carID int64) error {
	ok, err := s.stg.Exists(ctx, carID)
	if err != nil {
		return fmt.Errorf("check car %d: %w", carID, err)
	}
	if !ok {
		return fmt.Errorf("car %d: %w", carID, ErrNotFound)
	}
	return nil
}
