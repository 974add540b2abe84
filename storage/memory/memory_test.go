package memory

import (
	"context"
	"errors"
	"testing"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

func seed(t *testing.T, s *Store) (m *models.Manufacturer, d *models.Driver, c *models.Car) {
	t.Helper()
	ctx := context.Background()

	m, err := s.Manufacturer().Create(ctx, &models.Manufacturer{Name: "Toyota", Country: "Japan"})
	if err != nil {
		t.Fatalf("create manufacturer: %v", err)
	}
	d, err = s.Driver().Create(ctx, &models.Driver{Username: "abc", PasswordHash: "x", LicenseNumber: "AAA12345"})
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	c, err = s.Car().Create(ctx, models.CarInput{Model: "Camry", ManufacturerID: m.ID, DriverIDs: []int64{d.ID}})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	return m, d, c
}

func TestAssignIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, d, c := seed(t, s)

	for i := 0; i < 3; i++ {
		if err := s.Car().AssignDriver(ctx, c.ID, d.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	car, _ := s.Car().GetByID(ctx, c.ID)
	if len(car.Drivers) != 1 {
		t.Fatalf("expected a single assignment, got %d", len(car.Drivers))
	}

	for i := 0; i < 2; i++ {
		if err := s.Car().UnassignDriver(ctx, c.ID, d.ID); err != nil {
			t.Fatalf("unassign: %v", err)
		}
	}
	car, _ = s.Car().GetByID(ctx, c.ID)
	if len(car.Drivers) != 0 {
		t.Fatalf("expected no assignments, got %d", len(car.Drivers))
	}
}

func TestAssignUnknownCar(t *testing.T) {
	s := New()
	_, d, _ := seed(t, s)
	if err := s.Car().AssignDriver(context.Background(), 999, d.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteManufacturerCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	m, d, c := seed(t, s)

	if err := s.Manufacturer().Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Car().GetByID(ctx, c.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("car should be gone, got %v", err)
	}
	driver, err := s.Driver().GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("driver should survive: %v", err)
	}
	if len(driver.Cars) != 0 {
		t.Fatalf("assignment should be gone, got %d cars", len(driver.Cars))
	}
}

func TestDeleteDriverRemovesAssignments(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, d, c := seed(t, s)

	if err := s.Driver().Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete driver: %v", err)
	}
	car, _ := s.Car().GetByID(ctx, c.ID)
	if len(car.Drivers) != 0 {
		t.Fatalf("assignment should be gone")
	}
	if err := s.Driver().Delete(ctx, d.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestUniqueConstraints(t *testing.T) {
	s := New()
	ctx := context.Background()
	seed(t, s)

	_, err := s.Manufacturer().Create(ctx, &models.Manufacturer{Name: "Toyota", Country: "Japan"})
	if c, _ := storage.DuplicateConstraint(err); c != storage.ConstraintManufacturerName {
		t.Fatalf("expected duplicate manufacturer, got %v", err)
	}

	_, err = s.Driver().Create(ctx, &models.Driver{Username: "abc", LicenseNumber: "BBB12345"})
	if c, _ := storage.DuplicateConstraint(err); c != storage.ConstraintDriverUsername {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	other, err := s.Driver().Create(ctx, &models.Driver{Username: "def", LicenseNumber: "BBB12345"})
	if err != nil {
		t.Fatalf("create second driver: %v", err)
	}
	err = s.Driver().UpdateLicense(ctx, other.ID, "AAA12345")
	if c, _ := storage.DuplicateConstraint(err); c != storage.ConstraintDriverLicense {
		t.Fatalf("expected duplicate license, got %v", err)
	}
	if err := s.Driver().UpdateLicense(ctx, other.ID, "BBB12345"); err != nil {
		t.Fatalf("keeping own license: %v", err)
	}
}

func TestListPagesInOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, name := range []string{"Kia", "Audi", "Toyota", "BMW", "Ford", "Honda", "Mazda"} {
		if _, err := s.Manufacturer().Create(ctx, &models.Manufacturer{Name: name, Country: "X"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	first, _ := s.Manufacturer().List(ctx, 5, 0)
	second, _ := s.Manufacturer().List(ctx, 5, 5)
	if len(first) != 5 || len(second) != 2 {
		t.Fatalf("page sizes %d/%d", len(first), len(second))
	}
	if first[0].Name != "Audi" || second[1].Name != "Toyota" {
		t.Fatalf("unexpected order %s..%s", first[0].Name, second[1].Name)
	}
	if beyond, _ := s.Manufacturer().List(ctx, 5, 10); len(beyond) != 0 {
		t.Fatalf("expected empty page beyond the end")
	}
}

func TestUpdateCarReplacesDrivers(t *testing.T) {
	s := New()
	ctx := context.Background()
	m, _, c := seed(t, s)

	other, _ := s.Driver().Create(ctx, &models.Driver{Username: "xyz", LicenseNumber: "XYZ00001"})
	if _, err := s.Car().Update(ctx, c.ID, models.CarInput{Model: "Prius", ManufacturerID: m.ID, DriverIDs: []int64{other.ID}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	car, _ := s.Car().GetByID(ctx, c.ID)
	if car.Model != "Prius" || len(car.Drivers) != 1 || car.Drivers[0].ID != other.ID {
		t.Fatalf("unexpected car %+v", car)
	}

	if _, err := s.Car().Update(ctx, c.ID, models.CarInput{Model: "Prius", ManufacturerID: 999}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown manufacturer, got %v", err)
	}
}
