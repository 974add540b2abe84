package service

import (
	"context"
	"fmt"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
	"taxifleet/storage"
)

type ManufacturerService interface {
	Create(ctx context.Context, m models.Manufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, id int64, m models.Manufacturer) (*models.Manufacturer, error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	All(ctx context.Context) ([]*models.Manufacturer, error)
	List(ctx context.Context, page int) ([]*models.Manufacturer, pagination.Page, error)
	Delete(ctx context.Context, id int64) error
}

type manufacturerService struct {
	stg storage.IManufacturerStorage
	log logger.ILogger
}

func NewManufacturerService(stg storage.IStorage, log logger.ILogger) ManufacturerService {
	return &manufacturerService{
		stg: stg.Manufacturer(),
		log: log,
	}
}

func (s *manufacturerService) Create(ctx context.Context, m models.Manufacturer) (*models.Manufacturer, error) {
	created, err := s.stg.Create(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("create manufacturer: %w", err)
	}
	s.log.Info("manufacturer created", logger.Int64("id", created.ID), logger.String("name", created.Name))
	return created, nil
}

func (s *manufacturerService) Update(ctx context.Context, id int64, m models.Manufacturer) (*models.Manufacturer, error) {
	m.ID = id
	updated, err := s.stg.Update(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("update manufacturer %d: %w", id, err)
	}
	return updated, nil
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	m, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get manufacturer %d: %w", id, err)
	}
	return m, nil
}

func (s *manufacturerService) All(ctx context.Context) ([]*models.Manufacturer, error) {
	return s.stg.GetAll(ctx)
}

func (s *manufacturerService) List(ctx context.Context, page int) ([]*models.Manufacturer, pagination.Page, error) {
	total, err := s.stg.Count(ctx)
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("count manufacturers: %w", err)
	}
	p := pagination.New(page, total, pagination.PerPage)
	list, err := s.stg.List(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("list manufacturers: %w", err)
	}
	return list, p, nil
}

// Delete also removes every car of the manufacturer.
func (s *manufacturerService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete manufacturer %d: %w", id, err)
	}
	s.log.Info("manufacturer deleted", logger.Int64("id", id))
	return nil
}
