package memory

import (
	"context"
	"math"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type driverRepo struct{ s *Store }

func (r driverRepo) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.drivers {
		if other.Username == d.Username {
			return nil, &storage.DuplicateError{Constraint: storage.ConstraintDriverUsername}
		}
		if other.LicenseNumber == d.LicenseNumber {
			return nil, &storage.DuplicateError{Constraint: storage.ConstraintDriverLicense}
		}
	}

	created := *d
	created.ID = r.s.id()
	created.DateJoined = r.s.now().UTC()
	created.Cars = nil
	r.s.drivers[created.ID] = created
	return publicDriver(created), nil
}

func (r driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := publicDriver(d)
	for _, c := range sortedValues(r.s.cars, byCarModel) {
		if _, ok := r.s.carDrivers[pair{c.ID, id}]; ok {
			out.Cars = append(out.Cars, r.s.withManufacturer(c))
		}
	}
	return out, nil
}

func (r driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.Username == username {
			return publicDriver(d), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	return r.List(ctx, math.MaxInt, 0)
}

func (r driverRepo) List(ctx context.Context, limit, offset int) ([]*models.Driver, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Driver
	for _, d := range page(sortedValues(r.s.drivers, byUsername), limit, offset) {
		out = append(out, publicDriver(d))
	}
	return out, nil
}

func (r driverRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.drivers), ctxErr(ctx)
}

func (r driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return storage.ErrNotFound
	}
	for otherID, other := range r.s.drivers {
		if otherID != id && other.LicenseNumber == licenseNumber {
			return &storage.DuplicateError{Constraint: storage.ConstraintDriverLicense}
		}
	}
	d.LicenseNumber = licenseNumber
	r.s.drivers[id] = d
	return nil
}

func (r driverRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.drivers, id)
	for p := range r.s.carDrivers {
		if p.driverID == id {
			delete(r.s.carDrivers, p)
		}
	}
	return nil
}
