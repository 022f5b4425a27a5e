package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
)

type fakeEmployeeRepository struct {
	withTxFn   func(tx *gorm.DB) employee.Repository
	createFn   func(ctx context.Context, e *employee.Employee) error
	findAllFn  func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn   func(ctx context.Context, e *employee.Employee) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type employeeServiceDeps struct {
	gormDB    *gorm.DB
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   employee.Service
	repo      *fakeEmployeeRepository
	counter   *fakeCounterRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.MatchExpectationsInOrder(false)

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	svc := employee.NewService(gormDB, repo, counterRepo, rdb)

	return &employeeServiceDeps{
		gormDB:    gormDB,
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:  "Maria",
		LastName:   "Santos",
		Email:      "maria.santos@example.com",
		Cellphone:  "09171234567",
		Department: "Engineering",
		Position:   "Software Developer",
		HireDate:   "2023-04-17",
		Address: employee.AddressRequest{
			House:    "12B",
			Barangay: "San Antonio",
			City:     "Manila",
			Province: "Metro Manila",
			Zip:      "1008",
		},
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success derives salary and number", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.ListCacheKey).SetVal(1)

		var created *employee.Employee
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			created = e
			return nil
		}
		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, "employee_number", counterType)
			return 42, nil
		}

		resp, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
		assert.Equal(t, 75000.0, resp.Salary)
		assert.Equal(t, "2023-04-17", resp.HireDate)
	})

	t.Run("unknown position rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, false)

		req := validCreateRequest()
		req.Position = "Chief Vibes Officer"

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrUnknownPosition)
	})

	t.Run("future hire date rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, false)

		req := validCreateRequest()
		req.HireDate = time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrHireDateInFuture)
	})

	t.Run("malformed hire date rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, false)

		req := validCreateRequest()
		req.HireDate = "17-04-2023"

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("persist failure maps to domain error", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			return gorm.ErrRecordNotFound
		}

		_, err := deps.service.Create(ctx, validCreateRequest())
		assert.Error(t, err)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid uuid", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*employee.Employee, error) {
			assert.Equal(t, id.String(), gotID)
			return &employee.Employee{
				ID:        id,
				FirstName: "Maria",
				LastName:  "Santos",
				Position:  "Software Developer",
				Salary:    75000,
				HireDate:  time.Date(2023, 4, 17, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "Maria", resp.FirstName)
		assert.Equal(t, 75000.0, resp.Salary)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("salary follows position change", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.ListCacheKey).SetVal(1)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Position: "Software Developer", Salary: 75000}, nil
		}

		var updated *employee.Employee
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			updated = e
			return nil
		}

		req := employee.UpdateEmployeeRequest{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria.santos@example.com",
			Department: "Engineering",
			Position:   "Finance Manager",
		}

		resp, err := deps.service.Update(ctx, id.String(), req)

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		newSalary, ok := employee.SalaryForPosition("Finance Manager")
		assert.True(t, ok)
		assert.Equal(t, newSalary, resp.Salary)
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, false)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, gotID string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Position: "Software Developer"}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			return errors.New("write refused")
		}

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria.santos@example.com",
			Department: "Engineering",
			Position:   "Software Developer",
		})
		assert.Error(t, err)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid uuid", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		err := deps.service.Delete(ctx, "nope")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("success invalidates cache", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(employee.ListCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, uuid.New().String())
		assert.NoError(t, err)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}
