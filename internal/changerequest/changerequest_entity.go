package changerequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ChangeRequest is a proposed edit to an employee record awaiting an admin
// decision. The two snapshots are immutable once the request is created;
// only the status and the decision fields ever change, and exactly once.
type ChangeRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestNumber string    `gorm:"uniqueIndex:uq_change_request_number;not null"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_change_requests_employee"`

	RequestedBy string `gorm:"not null;index:idx_change_requests_requester"`
	Reason      string

	OriginalData []byte `gorm:"type:jsonb;not null"`
	UpdatedData  []byte `gorm:"type:jsonb;not null"`

	Status      string    `gorm:"not null;default:PENDING;index:idx_change_requests_status"`
	RequestDate time.Time `gorm:"not null"`

	ProcessedBy   *string
	ProcessedDate *time.Time
	AdminComments *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChangeRequest) TableName() string {
	return "change_requests"
}
