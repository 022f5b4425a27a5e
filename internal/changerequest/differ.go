package changerequest

import (
	"strconv"
	"strings"
	"unicode"

	"go-payroll/internal/employee"
)

// naValue renders a missing or blank side of a difference.
const naValue = "N/A"

// FieldDiff is one field-level discrepancy between a request's original and
// proposed snapshots. Produced on the fly for presentation, never persisted.
type FieldDiff struct {
	Field string `json:"field"`
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// snapshotFields enumerates the diffable snapshot keys in canonical order.
// The five address* keys form the recognized address group: each key is
// compared individually so an unchanged address sub-field never produces a
// difference even when its siblings changed.
var snapshotFields = []struct {
	name string
	get  func(employee.Snapshot) string
}{
	{"firstName", func(s employee.Snapshot) string { return s.FirstName }},
	{"lastName", func(s employee.Snapshot) string { return s.LastName }},
	{"email", func(s employee.Snapshot) string { return s.Email }},
	{"cellphone", func(s employee.Snapshot) string { return s.Cellphone }},
	{"department", func(s employee.Snapshot) string { return s.Department }},
	{"position", func(s employee.Snapshot) string { return s.Position }},
	{"salary", func(s employee.Snapshot) string { return formatSalary(s.Salary) }},
	{"addressHouse", func(s employee.Snapshot) string { return s.AddressHouse }},
	{"addressBarangay", func(s employee.Snapshot) string { return s.AddressBarangay }},
	{"addressCity", func(s employee.Snapshot) string { return s.AddressCity }},
	{"addressProvince", func(s employee.Snapshot) string { return s.AddressProvince }},
	{"addressZip", func(s employee.Snapshot) string { return s.AddressZip }},
}

// Diff compares two employee snapshots field by field and returns the
// differences in canonical field order. Identical snapshots yield an empty
// slice, which callers render as "no field-level changes detected".
func Diff(original, updated employee.Snapshot) []FieldDiff {
	diffs := make([]FieldDiff, 0, 4)

	for _, f := range snapshotFields {
		from := f.get(original)
		to := f.get(updated)
		if from == to {
			continue
		}

		diffs = append(diffs, FieldDiff{
			Field: f.name,
			Label: FormatFieldName(f.name),
			From:  displayValue(from),
			To:    displayValue(to),
		})
	}

	return diffs
}

// formatSalary renders a zero salary as blank so it surfaces as the N/A
// sentinel, matching how every other unset field is displayed.
func formatSalary(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func displayValue(v string) string {
	if v == "" {
		return naValue
	}
	return v
}

// FormatFieldName turns a camelCase field key into a display label by
// inserting a space before each internal uppercase letter and capitalizing
// the first one, e.g. "addressCity" becomes "Address City".
func FormatFieldName(field string) string {
	if field == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
