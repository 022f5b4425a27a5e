package employee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e := employee.Employee{
		FirstName:  "Maria",
		LastName:   "Santos",
		Email:      "maria.santos@example.com",
		Department: "Engineering",
		Position:   "Software Developer",
		Salary:     75000,
		Address: employee.Address{
			House:    "12B",
			Barangay: "San Antonio",
			City:     "Manila",
			Province: "Metro Manila",
			Zip:      "1008",
		},
	}

	snap := employee.SnapshotOf(e)
	data, err := snap.Marshal()
	assert.NoError(t, err)

	parsed, err := employee.ParseSnapshot(data)
	assert.NoError(t, err)
	assert.Equal(t, snap, parsed)
}

func TestParseSnapshotRejectsUnknownKeys(t *testing.T) {
	_, err := employee.ParseSnapshot([]byte(`{"firstName":"Maria","favoriteColor":"red"}`))
	assert.ErrorIs(t, err, employeeerrors.ErrSnapshotInvalid)
}

func TestParseSnapshotRejectsGarbage(t *testing.T) {
	_, err := employee.ParseSnapshot([]byte(`{not json`))
	assert.ErrorIs(t, err, employeeerrors.ErrSnapshotInvalid)
}

func TestSnapshotApplyDerivesSalaryFromPosition(t *testing.T) {
	e := employee.Employee{Position: "Software Developer", Salary: 75000}

	snap := employee.Snapshot{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria.santos@example.com",
		Position:  "Finance Manager",
		Salary:    1, // deliberately wrong; must never be applied
	}
	snap.Apply(&e)

	want, ok := employee.SalaryForPosition("Finance Manager")
	assert.True(t, ok)
	assert.Equal(t, want, e.Salary)
	assert.Equal(t, "Finance Manager", e.Position)
}

func TestSnapshotApplyKeepsSalaryForUnknownPosition(t *testing.T) {
	e := employee.Employee{Position: "Software Developer", Salary: 75000}

	snap := employee.Snapshot{Position: "Chief Vibes Officer", Salary: 999999}
	snap.Apply(&e)

	assert.Equal(t, 75000.0, e.Salary)
}
