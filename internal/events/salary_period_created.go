package events

import "time"

const SalaryPeriodCreatedTopic = "hr.salary_period.created.v1"

type SalaryPeriodCreatedEvent struct {
	EventType      string    `json:"event_type"`
	SalaryPeriodID string    `json:"salary_period_id"`
	EmployeeID     string    `json:"employee_id"`
	PeriodFrom     string    `json:"period_from"`
	PeriodTo       string    `json:"period_to"`
	NetPay         float64   `json:"net_pay"`
	OccurredAt     time.Time `json:"occurred_at"`
}
