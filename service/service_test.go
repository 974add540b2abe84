package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
	"taxifleet/storage/memory"
)

func newTestServices() IServiceManager {
	return New(memory.New(), logger.NewNop(), WithBcryptCost(bcrypt.MinCost))
}

func createDriver(t *testing.T, svc IServiceManager, username, license string) *models.Driver {
	t.Helper()
	d, err := svc.Driver().Create(context.Background(), models.DriverInput{
		Username:      username,
		Password:      "pa55word",
		LicenseNumber: license,
	})
	if err != nil {
		t.Fatalf("create driver %s: %v", username, err)
	}
	return d
}

func TestDriverCreateHashesPassword(t *testing.T) {
	svc := newTestServices()
	d := createDriver(t, svc, "abc", "AAA12345")

	if d.PasswordHash == "" || d.PasswordHash == "pa55word" {
		t.Fatalf("password not hashed: %q", d.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte("pa55word")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()
	created := createDriver(t, svc, "abc", "AAA12345")

	d, err := svc.Driver().Authenticate(ctx, "abc", "pa55word")
	if err != nil || d.ID != created.ID {
		t.Fatalf("Authenticate = %v, %v", d, err)
	}
	if _, err := svc.Driver().Authenticate(ctx, "abc", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Driver().Authenticate(ctx, "nobody", "pa55word"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestDuplicateLicenseIsReported(t *testing.T) {
	svc := newTestServices()
	createDriver(t, svc, "abc", "AAA12345")

	_, err := svc.Driver().Create(context.Background(), models.DriverInput{Username: "def", Password: "x", LicenseNumber: "AAA12345"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if c, _ := storage.DuplicateConstraint(err); c != storage.ConstraintDriverLicense {
		t.Fatalf("constraint = %q", c)
	}
}

func TestAssignUnassignIdempotent(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	m, _ := svc.Manufacturer().Create(ctx, models.Manufacturer{Name: "Kia", Country: "Korea"})
	car, _ := svc.Car().Create(ctx, models.CarInput{Model: "Rio", ManufacturerID: m.ID})
	d := createDriver(t, svc, "abc", "AAA12345")

	for i := 0; i < 2; i++ {
		if err := svc.Car().AssignDriver(ctx, car.ID, d.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	got, _ := svc.Car().Get(ctx, car.ID)
	if len(got.Drivers) != 1 {
		t.Fatalf("drivers = %d, want 1", len(got.Drivers))
	}

	other := createDriver(t, svc, "def", "BBB12345")
	if err := svc.Car().UnassignDriver(ctx, car.ID, other.ID); err != nil {
		t.Fatalf("unassign never-assigned driver: %v", err)
	}
	got, _ = svc.Car().Get(ctx, car.ID)
	if len(got.Drivers) != 1 {
		t.Fatalf("unassigning a stranger changed the set")
	}

	if err := svc.Car().AssignDriver(ctx, 999, d.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown car: %v", err)
	}
	if err := svc.Car().UnassignDriver(ctx, 999, d.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown car: %v", err)
	}
}

func TestListClampsPage(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		if _, err := svc.Manufacturer().Create(ctx, models.Manufacturer{Name: name, Country: "X"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, p, err := svc.Manufacturer().List(ctx, 42)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if p.Number != 2 || len(list) != 1 || list[0].Name != "F" {
		t.Fatalf("page %+v with %d items", p, len(list))
	}
}

func TestDashboardCounts(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	m, _ := svc.Manufacturer().Create(ctx, models.Manufacturer{Name: "Kia", Country: "Korea"})
	_, _ = svc.Car().Create(ctx, models.CarInput{Model: "Rio", ManufacturerID: m.ID})
	_, _ = svc.Car().Create(ctx, models.CarInput{Model: "Ceed", ManufacturerID: m.ID})
	createDriver(t, svc, "abc", "AAA12345")

	d, err := svc.Dashboard().Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if d.NumManufacturers != 1 || d.NumCars != 2 || d.NumDrivers != 1 {
		t.Fatalf("unexpected counts %+v", d)
	}
}

func TestDeleteManufacturerCascadesToCars(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	m, _ := svc.Manufacturer().Create(ctx, models.Manufacturer{Name: "Kia", Country: "Korea"})
	car, _ := svc.Car().Create(ctx, models.CarInput{Model: "Rio", ManufacturerID: m.ID})

	if err := svc.Manufacturer().Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Car().Get(ctx, car.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("car survived manufacturer delete: %v", err)
	}
	if err := svc.Manufacturer().Delete(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestNewUsesDefaultBcryptCost(t *testing.T) {
	svc := New(memory.New(), logger.NewNop())
	d := createDriver(t, svc, "abc", "AAA12345")

	cost, err := bcrypt.Cost([]byte(d.PasswordHash))
	if err != nil {
		t.Fatal(err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
