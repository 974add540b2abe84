package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

const carSelect = `
	SELECT c.id, c.model, c.manufacturer_id, m.name, m.country
	FROM cars c
	JOIN manufacturers m ON m.id = c.manufacturer_id`

type carRepo struct {
	db  DB
	log logger.ILogger
}

func NewCarRepo(db DB, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

// Create inserts the car and its initial drivers in one transaction.
func (r *carRepo) Create(ctx context.Context, in models.CarInput) (*models.Car, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	car := &models.Car{Model: in.Model, ManufacturerID: in.ManufacturerID}
	query := `INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRow(ctx, query, in.Model, in.ManufacturerID).Scan(&car.ID); err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}

	if err := insertCarDrivers(ctx, tx, car.ID, in.DriverIDs); err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("failed to assign drivers to new car", logger.Error(err), logger.Int64("car_id", car.ID))
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return car, nil
}

// Update rewrites the car's fields and replaces its driver set.
func (r *carRepo) Update(ctx context.Context, id int64, in models.CarInput) (*models.Car, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`, in.Model, in.ManufacturerID, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("failed to update car", logger.Error(err), logger.Int64("car_id", id))
		return nil, mapError(err)
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return nil, storage.ErrNotFound
	}

	// A nil slice would be sent as NULL and keep every row.
	keep := in.DriverIDs
	if keep == nil {
		keep = []int64{}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1 AND NOT (driver_id = ANY($2))`, id, keep); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err := insertCarDrivers(ctx, tx, id, in.DriverIDs); err != nil {
		_ = tx.Rollback(ctx)
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.Car{ID: id, Model: in.Model, ManufacturerID: in.ManufacturerID}, nil
}

func insertCarDrivers(ctx context.Context, tx pgx.Tx, carID int64, driverIDs []int64) error {
	for _, driverID := range driverIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, carID, driverID); err != nil {
			return err
		}
	}
	return nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	car, err := scanCar(r.db.QueryRow(ctx, carSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}

	query := `
		SELECT d.id, d.username, d.first_name, d.last_name, d.email, d.license_number, d.date_joined
		FROM drivers d
		JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE cd.car_id = $1
		ORDER BY d.username`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("failed to get car drivers", logger.Error(err), logger.Int64("car_id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Username, &d.FirstName, &d.LastName, &d.Email, &d.LicenseNumber, &d.DateJoined); err != nil {
			return nil, err
		}
		car.Drivers = append(car.Drivers, &d)
	}
	return car, rows.Err()
}

func (r *carRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cars WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *carRepo) List(ctx context.Context, limit, offset int) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, carSelect+` ORDER BY c.model, c.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.log.Error("failed to get cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *carRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM cars").Scan(&count)
	return count, err
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete car", logger.Error(err), logger.Int64("car_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AssignDriver is a no-op when the pair already exists.
func (r *carRepo) AssignDriver(ctx context.Context, carID, driverID int64) error {
	query := `INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, carID, driverID); err != nil {
		r.log.Error("failed to assign driver", logger.Error(err), logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
		return mapError(err)
	}
	return nil
}

// UnassignDriver is a no-op when the pair does not exist.
func (r *carRepo) UnassignDriver(ctx context.Context, carID, driverID int64) error {
	query := `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`
	_, err := r.db.Exec(ctx, query, carID, driverID)
	return err
}

func scanCar(row scanner) (*models.Car, error) {
	car := &models.Car{Manufacturer: &models.Manufacturer{}}
	err := row.Scan(&car.ID, &car.Model, &car.ManufacturerID, &car.Manufacturer.Name, &car.Manufacturer.Country)
	if err != nil {
		return nil, err
	}
	car.Manufacturer.ID = car.ManufacturerID
	return car, nil
}
