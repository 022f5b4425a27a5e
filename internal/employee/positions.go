package employee

// positionSalaries fixes the monthly rate per position. Salary is always
// derived from the position, never taken from user input.
var positionSalaries = map[string]float64{
	"Software Developer":   75000,
	"System Administrator": 70000,
	"IT Support":           45000,
	"DevOps Engineer":      85000,
	"HR Manager":           80000,
	"Recruiter":            55000,
	"HR Assistant":         40000,
	"Training Coordinator": 50000,
	"Accountant":           60000,
	"Financial Analyst":    65000,
	"Finance Manager":      90000,
	"Auditor":              70000,
	"Marketing Manager":    75000,
	"Content Creator":      50000,
	"Digital Marketer":     55000,
	"Brand Manager":        70000,
	"Operations Manager":   85000,
	"Project Manager":      80000,
	"Business Analyst":     65000,
	"Quality Assurance":    55000,
}

// SalaryForPosition returns the fixed monthly rate for a position.
func SalaryForPosition(position string) (float64, bool) {
	salary, ok := positionSalaries[position]
	return salary, ok
}
