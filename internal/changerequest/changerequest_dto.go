package changerequest

import (
	"time"

	"go-payroll/internal/employee"
)

type ProposedRecordRequest struct {
	FirstName       string  `json:"firstName" binding:"required"`
	LastName        string  `json:"lastName" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Cellphone       string  `json:"cellphone"`
	Department      string  `json:"department" binding:"required"`
	Position        string  `json:"position" binding:"required"`
	Salary          float64 `json:"salary"`
	AddressHouse    string  `json:"addressHouse"`
	AddressBarangay string  `json:"addressBarangay"`
	AddressCity     string  `json:"addressCity"`
	AddressProvince string  `json:"addressProvince"`
	AddressZip      string  `json:"addressZip"`
}

type CreateChangeRequestRequest struct {
	EmployeeID string                `json:"employeeId" binding:"required,uuid"`
	Reason     string                `json:"reason"`
	Updated    ProposedRecordRequest `json:"updated" binding:"required"`
}

type DecisionRequest struct {
	AdminComments string `json:"adminComments"`
}

type ChangeRequestResponse struct {
	ID            string     `json:"id"`
	RequestNumber string     `json:"requestNumber"`
	EmployeeID    string     `json:"employeeId"`
	RequestedBy   string     `json:"requestedBy"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	RequestDate   time.Time  `json:"requestDate"`
	ProcessedBy   *string    `json:"processedBy,omitempty"`
	ProcessedDate *time.Time `json:"processedDate,omitempty"`
	AdminComments *string    `json:"adminComments,omitempty"`
}

// ChangeRequestDetailResponse adds the snapshots and the field-level diff for
// the review screen.
type ChangeRequestDetailResponse struct {
	ChangeRequestResponse
	Original employee.Snapshot `json:"original"`
	Updated  employee.Snapshot `json:"updated"`
	Diff     []FieldDiff       `json:"diff"`
}
