package payroll

import (
	"time"

	"github.com/google/uuid"

	"go-payroll/internal/workhours"
)

// SalaryPeriod is one immutable payroll run for an employee. Once persisted
// its amounts never change; corrections are issued as new periods.
type SalaryPeriod struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_period,priority:1"`

	PeriodFrom time.Time `gorm:"type:date;not null;uniqueIndex:uq_salary_period,priority:2"`
	PeriodTo   time.Time `gorm:"type:date;not null"`

	MonthlyRate float64 `gorm:"not null"`

	RegularHours   float64 `gorm:"not null"`
	OvertimeHours  float64 `gorm:"not null"`
	HolidayHours   float64 `gorm:"not null"`
	NightDiffHours float64 `gorm:"not null"`

	RatePerDay             float64 `gorm:"not null"`
	RatePerHour            float64 `gorm:"not null"`
	RegularPay             float64 `gorm:"not null"`
	OvertimePay            float64 `gorm:"not null"`
	HolidayPay             float64 `gorm:"not null"`
	NightDiffPay           float64 `gorm:"not null"`
	GrossPay               float64 `gorm:"not null"`
	SSSContribution        float64 `gorm:"not null"`
	PhilHealthContribution float64 `gorm:"not null"`
	PagIBIGContribution    float64 `gorm:"not null"`
	WithholdingTax         float64 `gorm:"not null"`
	TotalDeductions        float64 `gorm:"not null"`
	NetPay                 float64 `gorm:"not null"`

	PayslipPDF         []byte     `gorm:"type:bytea"`
	PayslipGeneratedAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
}

func (SalaryPeriod) TableName() string {
	return "salary_periods"
}

// Hours reassembles the worked-hours value the period was computed from.
func (p *SalaryPeriod) Hours() workhours.Hours {
	return workhours.Hours{
		Regular:   p.RegularHours,
		Overtime:  p.OvertimeHours,
		Holiday:   p.HolidayHours,
		NightDiff: p.NightDiffHours,
	}
}
