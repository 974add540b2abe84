package storage

import (
	"context"

	"taxifleet/pkg/models"
)

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Car() ICarStorage
	Driver() IDriverStorage
	Close()
}

type IManufacturerStorage interface {
	Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetAll(ctx context.Context) ([]*models.Manufacturer, error)
	List(ctx context.Context, limit, offset int) ([]*models.Manufacturer, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

// ICarStorage loads cars with their manufacturer. GetByID also loads the
// assigned drivers.
type ICarStorage interface {
	Create(ctx context.Context, in models.CarInput) (*models.Car, error)
	Update(ctx context.Context, id int64, in models.CarInput) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.Car, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	AssignDriver(ctx context.Context, carID, driverID int64) error
	UnassignDriver(ctx context.Context, carID, driverID int64) error
}

// IDriverStorage.GetByID loads the driver's cars and each car's
// manufacturer.
type IDriverStorage interface {
	Create(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)
	List(ctx context.Context, limit, offset int) ([]*models.Driver, error)
	Count(ctx context.Context) (int, error)
	UpdateLicense(ctx context.Context, id int64, licenseNumber string) error
	Delete(ctx context.Context, id int64) error
}
