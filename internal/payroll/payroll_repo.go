package payroll

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *SalaryPeriod) error
	FindAll(ctx context.Context) ([]SalaryPeriod, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]SalaryPeriod, error)
	FindByID(ctx context.Context, id string) (*SalaryPeriod, error)
	SavePayslip(ctx context.Context, id string, pdf []byte) error
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

func (r *repository) Create(ctx context.Context, p *SalaryPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryPeriod, error) {
	var periods []SalaryPeriod
	err := r.db.WithContext(ctx).
		Omit("payslip_pdf").
		Order("period_from DESC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]SalaryPeriod, error) {
	var periods []SalaryPeriod
	err := r.db.WithContext(ctx).
		Omit("payslip_pdf").
		Where("employee_id = ?", employeeID).
		Order("period_from DESC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryPeriod, error) {
	var p SalaryPeriod
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) SavePayslip(ctx context.Context, id string, pdf []byte) error {
	now := gorm.Expr("NOW()")
	return r.db.WithContext(ctx).
		Model(&SalaryPeriod{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payslip_pdf":          pdf,
			"payslip_generated_at": now,
		}).Error
}
