package service

import (
	"golang.org/x/crypto/bcrypt"

	"taxifleet/pkg/logger"
	"taxifleet/storage"
)

type IServiceManager interface {
	Manufacturer() ManufacturerService
	Car() CarService
	Driver() DriverService
	Dashboard() DashboardService
}

type service struct {
	manufacturerService ManufacturerService
	carService          CarService
	driverService       DriverService
	dashboardService    DashboardService
}

type options struct {
	bcryptCost int
}

type Option func(*options)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

func New(stg storage.IStorage, log logger.ILogger, opts ...Option) IServiceManager {
	o := options{bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	return &service{
		manufacturerService: NewManufacturerService(stg, log),
		carService:          NewCarService(stg, log),
		driverService:       NewDriverServiceWithCost(stg, log, o.bcryptCost),
		dashboardService:    NewDashboardService(stg, log),
	}
}

func (s *service) Manufacturer() ManufacturerService {
	return s.manufacturerService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Dashboard() DashboardService {
	return s.dashboardService
}
