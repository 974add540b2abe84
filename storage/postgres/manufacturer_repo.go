package postgres

import (
	"context"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type manufacturerRepo struct {
	db  DB
	log logger.ILogger
}

func NewManufacturerRepo(db DB, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	query := `INSERT INTO manufacturers (name, country) VALUES ($1, $2) RETURNING id`

	created := *m
	if err := r.db.QueryRow(ctx, query, m.Name, m.Country).Scan(&created.ID); err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	return &created, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	query := `UPDATE manufacturers SET name = $1, country = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, m.Name, m.Country, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err), logger.Int64("id", m.ID))
		return nil, mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	updated := *m
	return &updated, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	query := `SELECT id, name, country FROM manufacturers WHERE id = $1`
	if err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Country); err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	return r.query(ctx, `SELECT id, name, country FROM manufacturers ORDER BY name`)
}

func (r *manufacturerRepo) List(ctx context.Context, limit, offset int) ([]*models.Manufacturer, error) {
	return r.query(ctx, `SELECT id, name, country FROM manufacturers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *manufacturerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM manufacturers").Scan(&count)
	return count, err
}

// Delete also removes the manufacturer's cars (ON DELETE CASCADE).
func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete manufacturer", logger.Error(err), logger.Int64("id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) query(ctx context.Context, query string, args ...any) ([]*models.Manufacturer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to get manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []*models.Manufacturer
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Country); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
