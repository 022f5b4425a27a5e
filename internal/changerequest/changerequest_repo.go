package changerequest

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=changerequest_repo.go -destination=mock/changerequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cr *ChangeRequest) error
	FindAll(ctx context.Context) ([]ChangeRequest, error)
	FindPending(ctx context.Context) ([]ChangeRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ChangeRequest, error)
	FindAllByRequester(ctx context.Context, requestedBy string) ([]ChangeRequest, error)
	FindByID(ctx context.Context, id string) (*ChangeRequest, error)

	// UpdateStatusIfPending flips the request's status conditionally on it
	// still being PENDING and reports how many rows changed. Zero rows means
	// another decision already won.
	UpdateStatusIfPending(ctx context.Context, id, status, processedBy string, processedDate time.Time, adminComments *string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cr *ChangeRequest) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPending(ctx context.Context) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("request_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByRequester(ctx context.Context, requestedBy string) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	err := r.db.WithContext(ctx).
		Where("requested_by = ?", requestedBy).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ChangeRequest, error) {
	var cr ChangeRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cr).Error
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *repository) UpdateStatusIfPending(
	ctx context.Context,
	id, status, processedBy string,
	processedDate time.Time,
	adminComments *string,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ChangeRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":         status,
			"processed_by":   processedBy,
			"processed_date": processedDate,
			"admin_comments": adminComments,
		})
	return result.RowsAffected, result.Error
}
