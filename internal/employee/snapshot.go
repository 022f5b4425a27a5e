package employee

import (
	"bytes"
	"encoding/json"

	employeeerrors "go-payroll/internal/employee/errors"
)

// Snapshot is the closed, flat schema of an employee record as carried
// inside a change request. Field order is the canonical key order used when
// diffing two snapshots.
type Snapshot struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Cellphone       string  `json:"cellphone"`
	Department      string  `json:"department"`
	Position        string  `json:"position"`
	Salary          float64 `json:"salary"`
	AddressHouse    string  `json:"addressHouse"`
	AddressBarangay string  `json:"addressBarangay"`
	AddressCity     string  `json:"addressCity"`
	AddressProvince string  `json:"addressProvince"`
	AddressZip      string  `json:"addressZip"`
}

// SnapshotOf captures the diffable fields of an employee record.
func SnapshotOf(e Employee) Snapshot {
	return Snapshot{
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		Cellphone:       e.Cellphone,
		Department:      e.Department,
		Position:        e.Position,
		Salary:          e.Salary,
		AddressHouse:    e.Address.House,
		AddressBarangay: e.Address.Barangay,
		AddressCity:     e.Address.City,
		AddressProvince: e.Address.Province,
		AddressZip:      e.Address.Zip,
	}
}

// ParseSnapshot decodes a stored snapshot, rejecting keys outside the closed
// schema. Snapshots are validated on every read, not only on write.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, employeeerrors.ErrSnapshotInvalid
	}
	return s, nil
}

// Marshal encodes the snapshot for storage.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Apply overwrites an employee record with the snapshot's contents. Salary is
// re-derived from the position table when the position is recognized; the
// snapshot's own salary figure is never applied directly.
func (s Snapshot) Apply(e *Employee) {
	e.FirstName = s.FirstName
	e.LastName = s.LastName
	e.Email = s.Email
	e.Cellphone = s.Cellphone
	e.Department = s.Department
	e.Position = s.Position
	e.Address.House = s.AddressHouse
	e.Address.Barangay = s.AddressBarangay
	e.Address.City = s.AddressCity
	e.Address.Province = s.AddressProvince
	e.Address.Zip = s.AddressZip

	if salary, ok := SalaryForPosition(s.Position); ok {
		e.Salary = salary
	}
}
