package workhours

import (
	"fmt"
	"math"
	"net/http"

	"go-payroll/internal/shared/apperror"
)

// Bucket names a worked-hour category on a salary period. The values match
// the wire-level field names.
type Bucket string

const (
	BucketRegular   Bucket = "regularHours"
	BucketOvertime  Bucket = "overtimeHours"
	BucketHoliday   Bucket = "holidayHours"
	BucketNightDiff Bucket = "nightDiffHours"
)

// Monthly ceilings per bucket.
const (
	MaxRegularHours   = 184.0
	MaxOvertimeHours  = 80.0
	MaxHolidayHours   = 64.0
	MaxNightDiffHours = 184.0
)

var ceilings = map[Bucket]float64{
	BucketRegular:   MaxRegularHours,
	BucketOvertime:  MaxOvertimeHours,
	BucketHoliday:   MaxHolidayHours,
	BucketNightDiff: MaxNightDiffHours,
}

var labels = map[Bucket]string{
	BucketRegular:   "Regular hours",
	BucketOvertime:  "Overtime hours",
	BucketHoliday:   "Holiday hours",
	BucketNightDiff: "Night differential hours",
}

// ErrNoHoursEntered is reported once per period, not per bucket.
var ErrNoHoursEntered = apperror.New(
	apperror.CodeInvalidInput,
	"no hours entered: at least one hour bucket must be non-zero",
	http.StatusBadRequest,
)

// Hours is one period's worked-hour buckets. Absent buckets are zero.
type Hours struct {
	Regular   float64
	Overtime  float64
	Holiday   float64
	NightDiff float64
}

// AnyWorked reports whether at least one bucket is non-zero.
func (h Hours) AnyWorked() bool {
	return h.Regular != 0 || h.Overtime != 0 || h.Holiday != 0 || h.NightDiff != 0
}

// Ceiling returns the monthly ceiling for a bucket.
func Ceiling(b Bucket) float64 {
	return ceilings[b]
}

// ValidateBucket checks a single bucket value against its ceiling. The
// ceiling itself is accepted; negatives and non-finite values are not.
func ValidateBucket(b Bucket, v float64) error {
	max, ok := ceilings[b]
	if !ok {
		return apperror.NewField(
			apperror.CodeInvalidInput,
			string(b),
			fmt.Sprintf("unknown hour bucket %q", string(b)),
			http.StatusBadRequest,
		)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperror.NewField(
			apperror.CodeInvalidInput,
			string(b),
			fmt.Sprintf("%s must be a number", labels[b]),
			http.StatusBadRequest,
		)
	}

	if v < 0 || v > max {
		return apperror.NewField(
			apperror.CodeInvalidInput,
			string(b),
			fmt.Sprintf("%s must be between 0 and %g per month", labels[b], max),
			http.StatusBadRequest,
		)
	}

	return nil
}

// Validate checks every bucket against its ceiling and requires at least one
// non-zero bucket. Bucket errors are field-scoped; the "no hours" failure is
// a single period-level error.
func Validate(h Hours) error {
	if err := ValidateBucket(BucketRegular, h.Regular); err != nil {
		return err
	}
	if err := ValidateBucket(BucketOvertime, h.Overtime); err != nil {
		return err
	}
	if err := ValidateBucket(BucketHoliday, h.Holiday); err != nil {
		return err
	}
	if err := ValidateBucket(BucketNightDiff, h.NightDiff); err != nil {
		return err
	}

	if !h.AnyWorked() {
		return ErrNoHoursEntered
	}

	return nil
}
