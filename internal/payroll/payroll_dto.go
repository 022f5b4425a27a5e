package payroll

import "time"

type CreateSalaryPeriodRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required,uuid"`
	PeriodFrom string  `json:"periodFrom" binding:"required"`
	PeriodTo   string  `json:"periodTo" binding:"required"`
	Regular    float64 `json:"regularHours"`
	Overtime   float64 `json:"overtimeHours"`
	Holiday    float64 `json:"holidayHours"`
	NightDiff  float64 `json:"nightDiffHours"`
}

type HoursResponse struct {
	Regular   float64 `json:"regularHours"`
	Overtime  float64 `json:"overtimeHours"`
	Holiday   float64 `json:"holidayHours"`
	NightDiff float64 `json:"nightDiffHours"`
}

type SalaryPeriodResponse struct {
	ID          string        `json:"id"`
	EmployeeID  string        `json:"employeeId"`
	PeriodFrom  string        `json:"periodFrom"`
	PeriodTo    string        `json:"periodTo"`
	MonthlyRate float64       `json:"monthlyRate"`
	Hours       HoursResponse `json:"hours"`
	Breakdown   Breakdown     `json:"breakdown"`
	HasPayslip  bool          `json:"hasPayslip"`
	CreatedAt   time.Time     `json:"createdAt"`
}
