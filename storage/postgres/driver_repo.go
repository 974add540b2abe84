package postgres

import (
	"context"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

const driverColumns = `id, username, password_hash, first_name, last_name, email, license_number, date_joined`

type driverRepo struct {
	db  DB
	log logger.ILogger
}

func NewDriverRepo(db DB, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (username, password_hash, first_name, last_name, email, license_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_joined`

	created := *d
	err := r.db.QueryRow(ctx, query, d.Username, d.PasswordHash, d.FirstName, d.LastName, d.Email, d.LicenseNumber).
		Scan(&created.ID, &created.DateJoined)
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err), logger.String("username", d.Username))
		return nil, mapError(err)
	}
	return &created, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}

	rows, err := r.db.Query(ctx, carSelect+`
		JOIN car_drivers cd ON cd.car_id = c.id
		WHERE cd.driver_id = $1
		ORDER BY c.model, c.id`, id)
	if err != nil {
		r.log.Error("failed to get driver cars", logger.Error(err), logger.Int64("driver_id", id))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		d.Cars = append(d.Cars, car)
	}
	return d, rows.Err()
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE username = $1`, username))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	return r.query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY username`)
}

func (r *driverRepo) List(ctx context.Context, limit, offset int) ([]*models.Driver, error) {
	return r.query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *driverRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM drivers").Scan(&count)
	return count, err
}

func (r *driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	tag, err := r.db.Exec(ctx, `UPDATE drivers SET license_number = $1 WHERE id = $2`, licenseNumber, id)
	if err != nil {
		r.log.Error("failed to update license", logger.Error(err), logger.Int64("driver_id", id))
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete driver", logger.Error(err), logger.Int64("driver_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) query(ctx context.Context, query string, args ...any) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to get drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func scanDriver(row scanner) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Username, &d.PasswordHash, &d.FirstName, &d.LastName, &d.Email, &d.LicenseNumber, &d.DateJoined)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
