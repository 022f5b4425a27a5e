package employee

import (
	"time"

	"github.com/google/uuid"
)

// Address is the composite address sub-structure. Its five fields are always
// diffed and displayed as a group.
type Address struct {
	House    string `gorm:"type:varchar(120)"`
	Barangay string `gorm:"type:varchar(120)"`
	City     string `gorm:"type:varchar(120)"`
	Province string `gorm:"type:varchar(120)"`
	Zip      string `gorm:"type:varchar(20)"`
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	FirstName      string    `gorm:"type:varchar(120);not null"`
	LastName       string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Cellphone      string    `gorm:"type:varchar(30)"`
	Department     string    `gorm:"type:varchar(120)"`
	Position       string    `gorm:"type:varchar(120)"`
	Salary         float64   `gorm:"type:numeric(12,2);not null;default:0"`
	HireDate       time.Time `gorm:"type:date"`
	Address        Address   `gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
