package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/pkg/pagination"
	"taxifleet/storage"
)

type DriverService interface {
	Create(ctx context.Context, in models.DriverInput) (*models.Driver, error)
	Authenticate(ctx context.Context, username, password string) (*models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	All(ctx context.Context) ([]*models.Driver, error)
	List(ctx context.Context, page int) ([]*models.Driver, pagination.Page, error)
	UpdateLicense(ctx context.Context, id int64, licenseNumber string) error
	Delete(ctx context.Context, id int64) error
}

type driverService struct {
	stg  storage.IDriverStorage
	log  logger.ILogger
	cost int
}

// NewDriverServiceWithCost lets tests use a cheap bcrypt cost.
func NewDriverServiceWithCost(stg storage.IStorage, log logger.ILogger, cost int) DriverService {
	return &driverService{
		stg:  stg.Driver(),
		log:  log,
		cost: cost,
	}
}

func (s *driverService) Create(ctx context.Context, in models.DriverInput) (*models.Driver, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d, err := s.stg.Create(ctx, &models.Driver{
		Username:      in.Username,
		PasswordHash:  string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		LicenseNumber: in.LicenseNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	s.log.Info("driver created", logger.Int64("id", d.ID), logger.String("username", d.Username))
	return d, nil
}

func (s *driverService) Authenticate(ctx context.Context, username, password string) (*models.Driver, error) {
	d, err := s.stg.GetByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate %q: %w", username, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return d, nil
}

func (s *driverService) All(ctx context.Context) ([]*models.Driver, error) {
	return s.stg.GetAll(ctx)
}

func (s *driverService) List(ctx context.Context, page int) ([]*models.Driver, pagination.Page, error) {
	total, err := s.stg.Count(ctx)
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("count drivers: %w", err)
	}
	p := pagination.New(page, total, pagination.PerPage)
	drivers, err := s.stg.List(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, p, nil
}

func (s *driverService) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	if err := s.stg.UpdateLicense(ctx, id, licenseNumber); err != nil {
		return fmt.Errorf("update license of driver %d: %w", id, err)
	}
	return nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete driver %d: %w", id, err)
	}
	s.log.Info("driver deleted", logger.Int64("id", id))
	return nil
}
