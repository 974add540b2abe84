package memory

import (
	"context"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type carRepo struct{ s *Store }

func (r carRepo) Create(ctx context.Context, in models.CarInput) (*models.Car, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(in); err != nil {
		return nil, err
	}
	car := models.Car{ID: r.s.id(), Model: in.Model, ManufacturerID: in.ManufacturerID}
	r.s.cars[car.ID] = car
	for _, driverID := range in.DriverIDs {
		r.s.carDrivers[pair{car.ID, driverID}] = struct{}{}
	}
	return &car, nil
}

func (r carRepo) Update(ctx context.Context, id int64, in models.CarInput) (*models.Car, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[id]; !ok {
		return nil, storage.ErrNotFound
	}
	if err := r.checkRefs(in); err != nil {
		return nil, err
	}

	car := models.Car{ID: id, Model: in.Model, ManufacturerID: in.ManufacturerID}
	r.s.cars[id] = car
	for p := range r.s.carDrivers {
		if p.carID == id {
			delete(r.s.carDrivers, p)
		}
	}
	for _, driverID := range in.DriverIDs {
		r.s.carDrivers[pair{id, driverID}] = struct{}{}
	}
	return &car, nil
}

// checkRefs mirrors the foreign keys of cars and car_drivers.
func (r carRepo) checkRefs(in models.CarInput) error {
	if _, ok := r.s.manufacturers[in.ManufacturerID]; !ok {
		return storage.ErrNotFound
	}
	for _, driverID := range in.DriverIDs {
		if _, ok := r.s.drivers[driverID]; !ok {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (r carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cars[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	car := r.s.withManufacturer(c)
	for _, d := range sortedValues(r.s.drivers, byUsername) {
		if _, ok := r.s.carDrivers[pair{id, d.ID}]; ok {
			car.Drivers = append(car.Drivers, publicDriver(d))
		}
	}
	return car, nil
}

func (r carRepo) Exists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.cars[id]
	return ok, ctxErr(ctx)
}

func (r carRepo) List(ctx context.Context, limit, offset int) ([]*models.Car, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Car
	for _, c := range page(sortedValues(r.s.cars, byCarModel), limit, offset) {
		out = append(out, r.s.withManufacturer(c))
	}
	return out, nil
}

func (r carRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.cars), ctxErr(ctx)
}

func (r carRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[id]; !ok {
		return storage.ErrNotFound
	}
	r.s.deleteCar(id)
	return nil
}

func (r carRepo) AssignDriver(ctx context.Context, carID, driverID int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[carID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.drivers[driverID]; !ok {
		return storage.ErrNotFound
	}
	r.s.carDrivers[pair{carID, driverID}] = struct{}{}
	return nil
}

func (r carRepo) UnassignDriver(ctx context.Context, carID, driverID int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.carDrivers, pair{carID, driverID})
	return nil
}

// deleteCar removes a car and its assignments. Callers hold s.mu.
func (s *Store) deleteCar(id int64) {
	delete(s.cars, id)
	for p := range s.carDrivers {
		if p.carID == id {
			delete(s.carDrivers, p)
		}
	}
}
