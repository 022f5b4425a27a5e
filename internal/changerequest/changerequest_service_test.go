package changerequest_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-payroll/internal/changerequest"
	changerequesterrors "go-payroll/internal/changerequest/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/apperror"
)

type fakeChangeRequestRepository struct {
	createFn                func(ctx context.Context, cr *changerequest.ChangeRequest) error
	findByIDFn              func(ctx context.Context, id string) (*changerequest.ChangeRequest, error)
	findPendingFn           func(ctx context.Context) ([]changerequest.ChangeRequest, error)
	updateStatusIfPendingFn func(ctx context.Context, id, status, processedBy string, processedDate time.Time, adminComments *string) (int64, error)

	statusUpdates int
}

func (f *fakeChangeRequestRepository) WithTx(tx *gorm.DB) changerequest.Repository { return f }

func (f *fakeChangeRequestRepository) Create(ctx context.Context, cr *changerequest.ChangeRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, cr)
	}
	return nil
}

func (f *fakeChangeRequestRepository) FindAll(ctx context.Context) ([]changerequest.ChangeRequest, error) {
	return nil, nil
}

func (f *fakeChangeRequestRepository) FindPending(ctx context.Context) ([]changerequest.ChangeRequest, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeChangeRequestRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]changerequest.ChangeRequest, error) {
	return nil, nil
}

func (f *fakeChangeRequestRepository) FindAllByRequester(ctx context.Context, requestedBy string) ([]changerequest.ChangeRequest, error) {
	return nil, nil
}

func (f *fakeChangeRequestRepository) FindByID(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChangeRequestRepository) UpdateStatusIfPending(ctx context.Context, id, status, processedBy string, processedDate time.Time, adminComments *string) (int64, error) {
	f.statusUpdates++
	if f.updateStatusIfPendingFn != nil {
		return f.updateStatusIfPendingFn(ctx, id, status, processedBy, processedDate, adminComments)
	}
	return 1, nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn   func(ctx context.Context, e *employee.Employee) error
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeCounterRepository struct {
	nextValue int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.nextValue, nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type changeRequestServiceDeps struct {
	sqlMock      sqlmock.Sqlmock
	redisMock    redismock.ClientMock
	service      changerequest.Service
	repo         *fakeChangeRequestRepository
	employeeRepo *fakeEmployeeRepository
	counter      *fakeCounterRepository
	outbox       *fakeOutboxRepository
}

func setupChangeRequestServiceTest(t *testing.T) *changeRequestServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.MatchExpectationsInOrder(false)

	repo := &fakeChangeRequestRepository{}
	employeeRepo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{nextValue: 7}
	outbox := &fakeOutboxRepository{}
	svc := changerequest.NewService(gormDB, repo, employeeRepo, counterRepo, outbox, rdb)

	return &changeRequestServiceDeps{
		sqlMock:      sqlMock,
		redisMock:    redisMock,
		service:      svc,
		repo:         repo,
		employeeRepo: employeeRepo,
		counter:      counterRepo,
		outbox:       outbox,
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

func adminSession() domain.Session {
	return domain.Session{Username: "admin.reyes", Role: domain.RoleAdmin}
}

func hrSession() domain.Session {
	return domain.Session{Username: "hr.cruz", Role: domain.RoleHR}
}

func storedEmployee(id uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:         id,
		FirstName:  "Maria",
		LastName:   "Santos",
		Email:      "maria.santos@example.com",
		Department: "Engineering",
		Position:   "Software Developer",
		Salary:     75000,
	}
}

func pendingRequest(id, employeeID uuid.UUID) *changerequest.ChangeRequest {
	original := employee.SnapshotOf(*storedEmployee(employeeID))
	updated := original
	updated.Position = "Finance Manager"
	updated.Department = "Finance"

	originalData, _ := original.Marshal()
	updatedData, _ := updated.Marshal()

	return &changerequest.ChangeRequest{
		ID:            id,
		RequestNumber: "CR-000007",
		EmployeeID:    employeeID,
		RequestedBy:   "hr.cruz",
		Reason:        "transfer to finance",
		OriginalData:  originalData,
		UpdatedData:   updatedData,
		Status:        changerequest.StatusPending,
		RequestDate:   time.Now().UTC(),
	}
}

func proposedTransfer() changerequest.ProposedRecordRequest {
	return changerequest.ProposedRecordRequest{
		FirstName:  "Maria",
		LastName:   "Santos",
		Email:      "maria.santos@example.com",
		Department: "Finance",
		Position:   "Finance Manager",
	}
}

func TestChangeRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success snapshots both sides and numbers the request", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel("change_requests:pending", employee.ListCacheKey).SetVal(1)
		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return storedEmployee(employeeID), nil
		}

		var saved *changerequest.ChangeRequest
		deps.repo.createFn = func(ctx context.Context, cr *changerequest.ChangeRequest) error {
			saved = cr
			return nil
		}

		resp, err := deps.service.Create(ctx, hrSession(), changerequest.CreateChangeRequestRequest{
			EmployeeID: employeeID.String(),
			Reason:     "transfer to finance",
			Updated:    proposedTransfer(),
		})

		assert.NoError(t, err)
		assert.Equal(t, "CR-000007", resp.RequestNumber)
		assert.Equal(t, changerequest.StatusPending, resp.Status)
		assert.Equal(t, "hr.cruz", resp.RequestedBy)

		assert.NotNil(t, saved)
		original, err := employee.ParseSnapshot(saved.OriginalData)
		assert.NoError(t, err)
		assert.Equal(t, "Software Developer", original.Position)
		updated, err := employee.ParseSnapshot(saved.UpdatedData)
		assert.NoError(t, err)
		assert.Equal(t, "Finance Manager", updated.Position)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)

		_, err := deps.service.Create(ctx, hrSession(), changerequest.CreateChangeRequestRequest{
			EmployeeID: "not-a-uuid",
			Updated:    proposedTransfer(),
		})
		assert.Error(t, err)
	})
}

func TestChangeRequestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("success applies snapshot and flips status", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel("change_requests:pending", employee.ListCacheKey).SetVal(1)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}
		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return storedEmployee(employeeID), nil
		}

		var updatedEmployee *employee.Employee
		deps.employeeRepo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			updatedEmployee = e
			return nil
		}

		resp, err := deps.service.Approve(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, changerequest.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ProcessedBy)
		assert.Equal(t, "admin.reyes", *resp.ProcessedBy)

		assert.NotNil(t, updatedEmployee)
		assert.Equal(t, "Finance Manager", updatedEmployee.Position)
		// Salary follows the approved position, not whatever the snapshot
		// carried at submission time.
		assert.InDelta(t, 90000.0, updatedEmployee.Salary, 1e-9)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "change_request.approved", deps.outbox.events[0].EventType)
	})

	t.Run("already processed request is rejected", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			cr := pendingRequest(requestID, employeeID)
			cr.Status = changerequest.StatusRejected
			return cr, nil
		}

		_, err := deps.service.Approve(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{})
		assert.ErrorIs(t, err, changerequesterrors.ErrRequestAlreadyProcessed)
		assert.Zero(t, deps.repo.statusUpdates)
	})

	t.Run("losing the decision race rolls everything back", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}
		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return storedEmployee(employeeID), nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, id, status, processedBy string, processedDate time.Time, adminComments *string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Approve(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{})
		assert.ErrorIs(t, err, changerequesterrors.ErrRequestAlreadyProcessed)
		assert.Empty(t, deps.outbox.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee update failure rolls back", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}
		deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return storedEmployee(employeeID), nil
		}
		deps.employeeRepo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			return errors.New("deadlock detected")
		}

		_, err := deps.service.Approve(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{})
		assert.Error(t, err)
		assert.Zero(t, deps.repo.statusUpdates)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)

		_, err := deps.service.Approve(ctx, hrSession(), uuid.NewString(), changerequest.DecisionRequest{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestChangeRequestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("comments are mandatory and whitespace does not count", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()

		_, err := deps.service.Reject(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{
			AdminComments: "   \t ",
		})

		assert.ErrorIs(t, err, changerequesterrors.ErrCommentsRequired)
		assert.Zero(t, deps.repo.statusUpdates)
		// Validation happens before any transaction is opened.
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success stores trimmed comments and emits event", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel("change_requests:pending", employee.ListCacheKey).SetVal(1)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}

		var gotComments *string
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, id, status, processedBy string, processedDate time.Time, adminComments *string) (int64, error) {
			gotComments = adminComments
			assert.Equal(t, changerequest.StatusRejected, status)
			return 1, nil
		}

		resp, err := deps.service.Reject(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{
			AdminComments: "  salary band not yet approved  ",
		})

		assert.NoError(t, err)
		assert.Equal(t, changerequest.StatusRejected, resp.Status)
		assert.NotNil(t, gotComments)
		assert.Equal(t, "salary band not yet approved", *gotComments)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "change_request.rejected", deps.outbox.events[0].EventType)
	})

	t.Run("rejection leaves the employee record untouched", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel("change_requests:pending", employee.ListCacheKey).SetVal(1)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}

		updated := false
		deps.employeeRepo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			updated = true
			return nil
		}

		_, err := deps.service.Reject(ctx, adminSession(), requestID.String(), changerequest.DecisionRequest{
			AdminComments: "keep current assignment",
		})

		assert.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestChangeRequestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("detail carries the computed diff", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)
		requestID := uuid.New()
		employeeID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*changerequest.ChangeRequest, error) {
			return pendingRequest(requestID, employeeID), nil
		}

		detail, err := deps.service.GetByID(ctx, requestID.String())

		assert.NoError(t, err)
		assert.Len(t, detail.Diff, 2)
		assert.Equal(t, "department", detail.Diff[0].Field)
		assert.Equal(t, "position", detail.Diff[1].Field)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)

		_, err := deps.service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, changerequesterrors.ErrInvalidRequestID)
	})
}

func TestChangeRequestService_GetPending(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from cache when warm", func(t *testing.T) {
		deps := setupChangeRequestServiceTest(t)

		cached := []changerequest.ChangeRequestResponse{{RequestNumber: "CR-000001", Status: changerequest.StatusPending}}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		deps.redisMock.ExpectGet("change_requests:pending").SetVal(string(payload))

		fetched := false
		deps.repo.findPendingFn = func(ctx context.Context) ([]changerequest.ChangeRequest, error) {
			fetched = true
			return nil, nil
		}

		resp, err := deps.service.GetPending(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "CR-000001", resp[0].RequestNumber)
		assert.False(t, fetched)
	})
}
