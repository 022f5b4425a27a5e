package events

import "time"

const (
	ChangeRequestApprovedTopic = "hr.change_request.approved.v1"
	ChangeRequestRejectedTopic = "hr.change_request.rejected.v1"
)

// ChangeRequestDecidedEvent is emitted once per change request when an admin
// approves or rejects it.
type ChangeRequestDecidedEvent struct {
	EventType       string    `json:"event_type"`
	ChangeRequestID string    `json:"change_request_id"`
	RequestNumber   string    `json:"request_number"`
	EmployeeID      string    `json:"employee_id"`
	Status          string    `json:"status"`
	ProcessedBy     string    `json:"processed_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
