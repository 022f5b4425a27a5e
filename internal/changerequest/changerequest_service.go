package changerequest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	changerequesterrors "go-payroll/internal/changerequest/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
)

const pendingCacheKey = "change_requests:pending"

//go:generate mockgen -source=changerequest_service.go -destination=mock/changerequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, session domain.Session, req CreateChangeRequestRequest) (ChangeRequestResponse, error)
	GetAll(ctx context.Context) ([]ChangeRequestResponse, error)
	GetPending(ctx context.Context) ([]ChangeRequestResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]ChangeRequestResponse, error)
	GetAllByRequester(ctx context.Context, requestedBy string) ([]ChangeRequestResponse, error)
	GetByID(ctx context.Context, id string) (ChangeRequestDetailResponse, error)
	Approve(ctx context.Context, session domain.Session, id string, req DecisionRequest) (ChangeRequestResponse, error)
	Reject(ctx context.Context, session domain.Session, id string, req DecisionRequest) (ChangeRequestResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("changerequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("changerequest.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		counter:      counterRepo,
		outbox:       outbox,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, session domain.Session, req CreateChangeRequestRequest) (ChangeRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create change request",
		zap.String("request_id", rid),
		zap.String("requested_by", session.Username),
		zap.String("employee_id", req.EmployeeID),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ChangeRequestResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create change request begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return ChangeRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qEmployee := s.employeeRepo.WithTx(tx)

	empl, err := qEmployee.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return ChangeRequestResponse{}, mapEmployeeLookupError(err)
	}

	original := employee.SnapshotOf(*empl)
	updated := snapshotFromProposed(req.Updated)

	originalData, err := original.Marshal()
	if err != nil {
		return ChangeRequestResponse{}, err
	}
	updatedData, err := updated.Marshal()
	if err != nil {
		return ChangeRequestResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "change_request_number")
	if err != nil {
		s.logger.Error("generate change request number failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	cr := &ChangeRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("CR-%06d", nextVal),
		EmployeeID:    employeeUUID,
		RequestedBy:   session.Username,
		Reason:        req.Reason,
		OriginalData:  originalData,
		UpdatedData:   updatedData,
		Status:        StatusPending,
		RequestDate:   time.Now().UTC(),
	}

	if err := qtx.Create(ctx, cr); err != nil {
		s.logger.Error("create change request persist failed", zap.String("request_id", rid), zap.Error(err))
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create change request commit failed", zap.String("request_id", rid), zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.invalidateCaches(ctx)
	s.logger.Info("change request created",
		zap.String("change_request_id", cr.ID.String()),
		zap.String("request_number", cr.RequestNumber),
		zap.String("requested_by", cr.RequestedBy),
	)

	return mapToResponse(*cr), nil
}

func (s *service) GetAll(ctx context.Context) ([]ChangeRequestResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(requests), nil
}

// GetPending serves the admin worklist; it is read far more often than it
// changes, so it is cached briefly and collapsed under singleflight.
func (s *service) GetPending(ctx context.Context) ([]ChangeRequestResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, pendingCacheKey).Bytes(); err == nil {
			var resp []ChangeRequestResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(pendingCacheKey, func() (any, error) {
		requests, err := s.repo.FindPending(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(requests)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, pendingCacheKey, payload, time.Minute).Err()
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ChangeRequestResponse), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]ChangeRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetAllByRequester(ctx context.Context, requestedBy string) ([]ChangeRequestResponse, error) {
	requests, err := s.repo.FindAllByRequester(ctx, requestedBy)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ChangeRequestDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ChangeRequestDetailResponse{}, changerequesterrors.ErrInvalidRequestID
	}

	cr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ChangeRequestDetailResponse{}, mapRepositoryError(err)
	}

	original, err := employee.ParseSnapshot(cr.OriginalData)
	if err != nil {
		return ChangeRequestDetailResponse{}, err
	}
	updated, err := employee.ParseSnapshot(cr.UpdatedData)
	if err != nil {
		return ChangeRequestDetailResponse{}, err
	}

	return ChangeRequestDetailResponse{
		ChangeRequestResponse: mapToResponse(*cr),
		Original:              original,
		Updated:               updated,
		Diff:                  Diff(original, updated),
	}, nil
}

func (s *service) Approve(ctx context.Context, session domain.Session, id string, req DecisionRequest) (ChangeRequestResponse, error) {
	if !session.IsAdmin() {
		return ChangeRequestResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return ChangeRequestResponse{}, changerequesterrors.ErrInvalidRequestID
	}

	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("approve change request begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return ChangeRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qEmployee := s.employeeRepo.WithTx(tx)
	qOutbox := s.outbox.WithTx(tx)

	cr, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if cr.Status != StatusPending {
		return ChangeRequestResponse{}, changerequesterrors.ErrRequestAlreadyProcessed
	}

	updated, err := employee.ParseSnapshot(cr.UpdatedData)
	if err != nil {
		return ChangeRequestResponse{}, err
	}

	empl, err := qEmployee.FindByID(ctx, cr.EmployeeID.String())
	if err != nil {
		return ChangeRequestResponse{}, mapEmployeeLookupError(err)
	}

	updated.Apply(empl)
	if err := qEmployee.Update(ctx, empl); err != nil {
		s.logger.Error("approve change request employee update failed",
			zap.String("change_request_id", id),
			zap.Error(err),
		)
		return ChangeRequestResponse{}, mapEmployeeLookupError(err)
	}

	processedDate := time.Now().UTC()
	comments := normalizeComments(req.AdminComments)

	rows, err := qtx.UpdateStatusIfPending(ctx, id, StatusApproved, session.Username, processedDate, comments)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if rows == 0 {
		// Another decision won the race; the employee update above rolls
		// back with the transaction.
		return ChangeRequestResponse{}, changerequesterrors.ErrRequestAlreadyProcessed
	}

	if err := s.enqueueDecisionEvent(ctx, qOutbox, rid, cr, StatusApproved, session.Username, processedDate); err != nil {
		s.logger.Error("enqueue approval event failed", zap.String("change_request_id", id), zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("approve change request commit failed", zap.String("change_request_id", id), zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.invalidateCaches(ctx)
	s.logger.Info("change request approved",
		zap.String("change_request_id", id),
		zap.String("request_number", cr.RequestNumber),
		zap.String("processed_by", session.Username),
	)

	cr.Status = StatusApproved
	cr.ProcessedBy = &session.Username
	cr.ProcessedDate = &processedDate
	cr.AdminComments = comments
	return mapToResponse(*cr), nil
}

func (s *service) Reject(ctx context.Context, session domain.Session, id string, req DecisionRequest) (ChangeRequestResponse, error) {
	if !session.IsAdmin() {
		return ChangeRequestResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return ChangeRequestResponse{}, changerequesterrors.ErrInvalidRequestID
	}

	// Comments are mandatory for a rejection and are validated before any
	// state transition is attempted.
	comments := normalizeComments(req.AdminComments)
	if comments == nil {
		return ChangeRequestResponse{}, changerequesterrors.ErrCommentsRequired
	}

	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("reject change request begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return ChangeRequestResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qOutbox := s.outbox.WithTx(tx)

	cr, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if cr.Status != StatusPending {
		return ChangeRequestResponse{}, changerequesterrors.ErrRequestAlreadyProcessed
	}

	processedDate := time.Now().UTC()

	rows, err := qtx.UpdateStatusIfPending(ctx, id, StatusRejected, session.Username, processedDate, comments)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if rows == 0 {
		return ChangeRequestResponse{}, changerequesterrors.ErrRequestAlreadyProcessed
	}

	if err := s.enqueueDecisionEvent(ctx, qOutbox, rid, cr, StatusRejected, session.Username, processedDate); err != nil {
		s.logger.Error("enqueue rejection event failed", zap.String("change_request_id", id), zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("reject change request commit failed", zap.String("change_request_id", id), zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	s.invalidateCaches(ctx)
	s.logger.Info("change request rejected",
		zap.String("change_request_id", id),
		zap.String("request_number", cr.RequestNumber),
		zap.String("processed_by", session.Username),
	)

	cr.Status = StatusRejected
	cr.ProcessedBy = &session.Username
	cr.ProcessedDate = &processedDate
	cr.AdminComments = comments
	return mapToResponse(*cr), nil
}

func (s *service) enqueueDecisionEvent(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	requestID string,
	cr *ChangeRequest,
	status, processedBy string,
	processedDate time.Time,
) error {
	eventType := "change_request.approved"
	topic := events.ChangeRequestApprovedTopic
	if status == StatusRejected {
		eventType = "change_request.rejected"
		topic = events.ChangeRequestRejectedTopic
	}

	event := events.ChangeRequestDecidedEvent{
		EventType:       eventType,
		ChangeRequestID: cr.ID.String(),
		RequestNumber:   cr.RequestNumber,
		EmployeeID:      cr.EmployeeID.String(),
		Status:          status,
		ProcessedBy:     processedBy,
		OccurredAt:      processedDate,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "change_request",
		AggregateID:   cr.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateCaches(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, pendingCacheKey, employee.ListCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate change request caches failed", zap.Error(err))
	}
}

// normalizeComments trims the comment and maps a blank result to nil.
func normalizeComments(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func snapshotFromProposed(p ProposedRecordRequest) employee.Snapshot {
	return employee.Snapshot{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Cellphone:       p.Cellphone,
		Department:      p.Department,
		Position:        p.Position,
		Salary:          p.Salary,
		AddressHouse:    p.AddressHouse,
		AddressBarangay: p.AddressBarangay,
		AddressCity:     p.AddressCity,
		AddressProvince: p.AddressProvince,
		AddressZip:      p.AddressZip,
	}
}

func mapToResponse(cr ChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		ID:            cr.ID.String(),
		RequestNumber: cr.RequestNumber,
		EmployeeID:    cr.EmployeeID.String(),
		RequestedBy:   cr.RequestedBy,
		Reason:        cr.Reason,
		Status:        cr.Status,
		RequestDate:   cr.RequestDate,
		ProcessedBy:   cr.ProcessedBy,
		ProcessedDate: cr.ProcessedDate,
		AdminComments: cr.AdminComments,
	}
}

func mapToListResponse(requests []ChangeRequest) []ChangeRequestResponse {
	resp := make([]ChangeRequestResponse, len(requests))
	for i, cr := range requests {
		resp[i] = mapToResponse(cr)
	}
	return resp
}
