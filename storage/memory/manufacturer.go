package memory

import (
	"context"
	"math"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type manufacturerRepo struct{ s *Store }

func (r manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(m.Name, 0) {
		return nil, &storage.DuplicateError{Constraint: storage.ConstraintManufacturerName}
	}
	created := *m
	created.ID = r.s.id()
	r.s.manufacturers[created.ID] = created
	return &created, nil
}

func (r manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[m.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	if r.nameTaken(m.Name, m.ID) {
		return nil, &storage.DuplicateError{Constraint: storage.ConstraintManufacturerName}
	}
	r.s.manufacturers[m.ID] = *m
	updated := *m
	return &updated, nil
}

func (r manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.manufacturers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (r manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	return r.List(ctx, math.MaxInt, 0)
}

func (r manufacturerRepo) List(ctx context.Context, limit, offset int) ([]*models.Manufacturer, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Manufacturer
	for _, m := range page(sortedValues(r.s.manufacturers, byManufacturerName), limit, offset) {
		out = append(out, &m)
	}
	return out, nil
}

func (r manufacturerRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.manufacturers), ctxErr(ctx)
}

// Delete cascades to the manufacturer's cars and their assignments.
func (r manufacturerRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.manufacturers, id)
	for carID, c := range r.s.cars {
		if c.ManufacturerID == id {
			r.s.deleteCar(carID)
		}
	}
	return nil
}

func (r manufacturerRepo) nameTaken(name string, except int64) bool {
	for id, m := range r.s.manufacturers {
		if id != except && m.Name == name {
			return true
		}
	}
	return false
}
