package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/workhours"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryPeriodRequest) (SalaryPeriodResponse, error)
	GetAll(ctx context.Context) ([]SalaryPeriodResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]SalaryPeriodResponse, error)
	GetByID(ctx context.Context, id string) (SalaryPeriodResponse, error)
	GetPayslip(ctx context.Context, id string) ([]byte, error)
	GeneratePayslip(ctx context.Context, id string) error
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outbox,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateSalaryPeriodRequest) (SalaryPeriodResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return SalaryPeriodResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	periodFrom, err := time.Parse("2006-01-02", req.PeriodFrom)
	if err != nil {
		return SalaryPeriodResponse{}, payrollerrors.ErrInvalidPeriodDate
	}
	periodTo, err := time.Parse("2006-01-02", req.PeriodTo)
	if err != nil {
		return SalaryPeriodResponse{}, payrollerrors.ErrInvalidPeriodDate
	}
	if !periodFrom.Before(periodTo) {
		return SalaryPeriodResponse{}, payrollerrors.ErrPeriodNotAscending
	}

	hours := workhours.Hours{
		Regular:   req.Regular,
		Overtime:  req.Overtime,
		Holiday:   req.Holiday,
		NightDiff: req.NightDiff,
	}
	if err := workhours.Validate(hours); err != nil {
		return SalaryPeriodResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create salary period begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return SalaryPeriodResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qEmployee := s.employeeRepo.WithTx(tx)
	qOutbox := s.outbox.WithTx(tx)

	empl, err := qEmployee.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return SalaryPeriodResponse{}, mapEmployeeLookupError(err)
	}

	breakdown, err := Calculate(empl.Salary, hours)
	if err != nil {
		s.logger.Warn("salary period not computable",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Float64("monthly_rate", empl.Salary),
		)
		return SalaryPeriodResponse{}, err
	}

	period := &SalaryPeriod{
		ID:             uuid.New(),
		EmployeeID:     empl.ID,
		PeriodFrom:     periodFrom,
		PeriodTo:       periodTo,
		MonthlyRate:    empl.Salary,
		RegularHours:   hours.Regular,
		OvertimeHours:  hours.Overtime,
		HolidayHours:   hours.Holiday,
		NightDiffHours: hours.NightDiff,

		RatePerDay:             breakdown.RatePerDay,
		RatePerHour:            breakdown.RatePerHour,
		RegularPay:             breakdown.RegularPay,
		OvertimePay:            breakdown.OvertimePay,
		HolidayPay:             breakdown.HolidayPay,
		NightDiffPay:           breakdown.NightDiffPay,
		GrossPay:               breakdown.GrossPay,
		SSSContribution:        breakdown.SSSContribution,
		PhilHealthContribution: breakdown.PhilHealthContribution,
		PagIBIGContribution:    breakdown.PagIBIGContribution,
		WithholdingTax:         breakdown.WithholdingTax,
		TotalDeductions:        breakdown.TotalDeductions,
		NetPay:                 breakdown.NetPay,
	}

	if err := qtx.Create(ctx, period); err != nil {
		s.logger.Error("create salary period persist failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryPeriodResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, qOutbox, rid, period); err != nil {
		s.logger.Error("enqueue salary period event failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryPeriodResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create salary period commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryPeriodResponse{}, err
	}

	s.logger.Info("salary period created",
		zap.String("salary_period_id", period.ID.String()),
		zap.String("employee_id", period.EmployeeID.String()),
		zap.Float64("net_pay", period.NetPay),
	)

	return mapToResponse(*period), nil
}

func (s *service) enqueueCreatedEvent(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	requestID string,
	period *SalaryPeriod,
) error {
	event := events.SalaryPeriodCreatedEvent{
		EventType:      "salary_period.created",
		SalaryPeriodID: period.ID.String(),
		EmployeeID:     period.EmployeeID.String(),
		PeriodFrom:     period.PeriodFrom.Format("2006-01-02"),
		PeriodTo:       period.PeriodTo.Format("2006-01-02"),
		NetPay:         period.NetPay,
		OccurredAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "salary_period",
		AggregateID:   period.ID.String(),
		EventType:     event.EventType,
		Topic:         events.SalaryPeriodCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context) ([]SalaryPeriodResponse, error) {
	periods, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(periods), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]SalaryPeriodResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	periods, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(periods), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryPeriodResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryPeriodResponse{}, payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryPeriodResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*period), nil
}

func (s *service) GetPayslip(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if period.PayslipGeneratedAt == nil || len(period.PayslipPDF) == 0 {
		return nil, payrollerrors.ErrPayslipNotGenerated
	}

	return period.PayslipPDF, nil
}

func (s *service) GeneratePayslip(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	empl, err := s.employeeRepo.FindByID(ctx, period.EmployeeID.String())
	if err != nil {
		return mapEmployeeLookupError(err)
	}

	pdf, err := buildPayslipPDF(payslipLines(empl, period))
	if err != nil {
		return err
	}

	if err := s.repo.SavePayslip(ctx, id, pdf); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("payslip generated",
		zap.String("salary_period_id", id),
		zap.Int("pdf_bytes", len(pdf)),
	)
	return nil
}

func payslipLines(empl *employee.Employee, p *SalaryPeriod) []string {
	return []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s %s (%s)", empl.FirstName, empl.LastName, empl.EmployeeNumber),
		fmt.Sprintf("Position: %s, %s", empl.Position, empl.Department),
		fmt.Sprintf("Period: %s to %s", p.PeriodFrom.Format("2006-01-02"), p.PeriodTo.Format("2006-01-02")),
		"",
		fmt.Sprintf("Monthly Rate:        %12.2f", p.MonthlyRate),
		fmt.Sprintf("Regular Pay:         %12.2f (%.2f hrs)", p.RegularPay, p.RegularHours),
		fmt.Sprintf("Overtime Pay:        %12.2f (%.2f hrs)", p.OvertimePay, p.OvertimeHours),
		fmt.Sprintf("Holiday Pay:         %12.2f (%.2f hrs)", p.HolidayPay, p.HolidayHours),
		fmt.Sprintf("Night Diff Pay:      %12.2f (%.2f hrs)", p.NightDiffPay, p.NightDiffHours),
		fmt.Sprintf("Gross Pay:           %12.2f", p.GrossPay),
		"",
		fmt.Sprintf("SSS:                 %12.2f", p.SSSContribution),
		fmt.Sprintf("PhilHealth:          %12.2f", p.PhilHealthContribution),
		fmt.Sprintf("Pag-IBIG:            %12.2f", p.PagIBIGContribution),
		fmt.Sprintf("Withholding Tax:     %12.2f", p.WithholdingTax),
		fmt.Sprintf("Total Deductions:    %12.2f", p.TotalDeductions),
		"",
		fmt.Sprintf("NET PAY:             %12.2f", p.NetPay),
	}
}

func mapToResponse(p SalaryPeriod) SalaryPeriodResponse {
	return SalaryPeriodResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		PeriodFrom:  p.PeriodFrom.Format("2006-01-02"),
		PeriodTo:    p.PeriodTo.Format("2006-01-02"),
		MonthlyRate: p.MonthlyRate,
		Hours: HoursResponse{
			Regular:   p.RegularHours,
			Overtime:  p.OvertimeHours,
			Holiday:   p.HolidayHours,
			NightDiff: p.NightDiffHours,
		},
		Breakdown: Breakdown{
			RatePerDay:             p.RatePerDay,
			RatePerHour:            p.RatePerHour,
			RegularPay:             p.RegularPay,
			OvertimePay:            p.OvertimePay,
			HolidayPay:             p.HolidayPay,
			NightDiffPay:           p.NightDiffPay,
			GrossPay:               p.GrossPay,
			SSSContribution:        p.SSSContribution,
			PhilHealthContribution: p.PhilHealthContribution,
			PagIBIGContribution:    p.PagIBIGContribution,
			WithholdingTax:         p.WithholdingTax,
			TotalDeductions:        p.TotalDeductions,
			NetPay:                 p.NetPay,
		},
		HasPayslip: p.PayslipGeneratedAt != nil,
		CreatedAt:  p.CreatedAt,
	}
}

func mapToListResponse(periods []SalaryPeriod) []SalaryPeriodResponse {
	resp := make([]SalaryPeriodResponse, len(periods))
	for i, p := range periods {
		resp[i] = mapToResponse(p)
	}
	return resp
}
