package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/storage"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignDriverIgnoresExistingPair(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	q := regexp.QuoteMeta(`INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`)
	mock.ExpectExec(q).WithArgs(int64(1), int64(7)).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(q).WithArgs(int64(1), int64(7)).WillReturnResult(pgxmock.NewResult("INSERT", 0))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := repo.AssignDriver(ctx, 1, 7); err != nil {
			t.Fatalf("AssignDriver #%d: %v", i+1, err)
		}
	}
	expectationsMet(t, mock)
}

func TestAssignDriverMissingCarIsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO car_drivers`)).
		WithArgs(int64(404), int64(7)).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})

	err := repo.AssignDriver(context.Background(), 404, 7)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUnassignDriverAbsentPairIsNoop(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`)).
		WithArgs(int64(1), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.UnassignDriver(context.Background(), 1, 7); err != nil {
		t.Fatalf("UnassignDriver: %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateCarWithDriversInTransaction(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`)).
		WithArgs("Corolla", int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO car_drivers`)).
		WithArgs(int64(11), int64(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO car_drivers`)).
		WithArgs(int64(11), int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	car, err := repo.Create(context.Background(), models.CarInput{Model: "Corolla", ManufacturerID: 3, DriverIDs: []int64{1, 2}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if car.ID != 11 || car.ManufacturerID != 3 {
		t.Fatalf("unexpected car %+v", car)
	}
	expectationsMet(t, mock)
}

func TestCreateCarRollsBackOnDriverFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cars`)).
		WithArgs("Corolla", int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO car_drivers`)).
		WithArgs(int64(11), int64(99)).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.CarInput{Model: "Corolla", ManufacturerID: 3, DriverIDs: []int64{99}})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateCarClearsDriversWithEmptySet(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`)).
		WithArgs("Yaris", int64(3), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM car_drivers WHERE car_id = $1 AND NOT (driver_id = ANY($2))`)).
		WithArgs(int64(5), []int64{}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	if _, err := repo.Update(context.Background(), 5, models.CarInput{Model: "Yaris", ManufacturerID: 3}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateMissingCar(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cars`)).
		WithArgs("Yaris", int64(3), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 5, models.CarInput{Model: "Yaris", ManufacturerID: 3})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestCarListJoinsManufacturer(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	rows := pgxmock.NewRows([]string{"id", "model", "manufacturer_id", "name", "country"}).
		AddRow(int64(1), "Camry", int64(2), "Toyota", "Japan").
		AddRow(int64(4), "Rio", int64(3), "Kia", "Korea")
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN manufacturers m ON m.id = c.manufacturer_id ORDER BY c.model, c.id LIMIT $1 OFFSET $2`)).
		WithArgs(5, 0).
		WillReturnRows(rows)

	cars, err := repo.List(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cars) != 2 || cars[1].Manufacturer.Name != "Kia" || cars[1].Manufacturer.ID != 3 {
		t.Fatalf("unexpected cars %+v", cars)
	}
	expectationsMet(t, mock)
}

func TestGetCarNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCarRepo(mock, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1`)).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), 9); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestDeleteManufacturerNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewManufacturerRepo(mock, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM manufacturers WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), 3); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateManufacturerDuplicateName(t *testing.T) {
	mock := newMock(t)
	repo := NewManufacturerRepo(mock, logger.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO manufacturers (name, country) VALUES ($1, $2) RETURNING id`)).
		WithArgs("Toyota", "Japan").
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: storage.ConstraintManufacturerName})

	_, err := repo.Create(context.Background(), &models.Manufacturer{Name: "Toyota", Country: "Japan"})
	if c, ok := storage.DuplicateConstraint(err); !ok || c != storage.ConstraintManufacturerName {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestDriverGetByIDLoadsCars(t *testing.T) {
	mock := newMock(t)
	repo := NewDriverRepo(mock, logger.NewNop())

	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM drivers WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "first_name", "last_name", "email", "license_number", "date_joined"}).
			AddRow(int64(7), "abc", "hash", "Ann", "Lee", "ann@example.com", "AAA12345", joined))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE cd.driver_id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "model", "manufacturer_id", "name", "country"}).
			AddRow(int64(1), "Camry", int64(2), "Toyota", "Japan"))

	d, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if d.LicenseNumber != "AAA12345" || !d.DateJoined.Equal(joined) {
		t.Fatalf("unexpected driver %+v", d)
	}
	if len(d.Cars) != 1 || d.Cars[0].Manufacturer.Name != "Toyota" {
		t.Fatalf("cars not loaded: %+v", d.Cars)
	}
	expectationsMet(t, mock)
}

func TestUpdateLicenseDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewDriverRepo(mock, logger.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE drivers SET license_number = $1 WHERE id = $2`)).
		WithArgs("BBB54321", int64(7)).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: storage.ConstraintDriverLicense})

	err := repo.UpdateLicense(context.Background(), 7, "BBB54321")
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	expectationsMet(t, mock)
}
