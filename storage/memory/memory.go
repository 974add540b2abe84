// Package memory is a mutex-guarded in-process implementation of
// storage.IStorage. It keeps the same uniqueness and cascade rules as the
// Postgres schema and backs STORAGE_DRIVER=memory and the handler tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

type pair struct {
	carID    int64
	driverID int64
}

type Store struct {
	mu sync.RWMutex

	nextID        int64
	manufacturers map[int64]models.Manufacturer
	cars          map[int64]models.Car
	drivers       map[int64]models.Driver
	carDrivers    map[pair]struct{}

	now func() time.Time
}

func New() *Store {
	return &Store{
		manufacturers: make(map[int64]models.Manufacturer),
		cars:          make(map[int64]models.Car),
		drivers:       make(map[int64]models.Driver),
		carDrivers:    make(map[pair]struct{}),
		now:           time.Now,
	}
}

func (s *Store) Close() {}

func (s *Store) Manufacturer() storage.IManufacturerStorage { return manufacturerRepo{s} }
func (s *Store) Car() storage.ICarStorage                   { return carRepo{s} }
func (s *Store) Driver() storage.IDriverStorage             { return driverRepo{s} }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// page slices sorted values the way LIMIT/OFFSET would.
func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

func sortedValues[K comparable, V any](m map[K]V, cmpFn func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, cmpFn)
	return out
}

func byManufacturerName(a, b models.Manufacturer) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func byCarModel(a, b models.Car) int {
	return cmp.Or(cmp.Compare(a.Model, b.Model), cmp.Compare(a.ID, b.ID))
}

func byUsername(a, b models.Driver) int {
	return cmp.Or(cmp.Compare(a.Username, b.Username), cmp.Compare(a.ID, b.ID))
}

// withManufacturer returns a copy of c with its manufacturer attached.
// Callers hold s.mu.
func (s *Store) withManufacturer(c models.Car) *models.Car {
	m := s.manufacturers[c.ManufacturerID]
	c.Manufacturer = &m
	c.Drivers = nil
	return &c
}

func publicDriver(d models.Driver) *models.Driver {
	d.Cars = nil
	return &d
}

func ctxErr(ctx context.Context) error {
	return ctx.Err()
}
