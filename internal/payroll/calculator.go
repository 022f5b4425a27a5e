package payroll

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/workhours"
)

// Statutory deduction rates. Pag-IBIG is capped at a flat peso amount.
const (
	sssRate        = 0.045
	philHealthRate = 0.0175
	pagIBIGRate    = 0.02
	pagIBIGCap     = 100.0
)

// Hourly premium multipliers per bucket.
const (
	overtimePremium  = 1.25
	holidayPremium   = 2.00
	nightDiffPremium = 0.10
)

// Withholding tax brackets over the annualized gross. Periods are treated as
// bi-monthly, so annualized = gross * 24 and the annual tax divides back by
// 24. Upper bounds are inclusive; the base amounts make the function
// continuous at every boundary.
const annualPeriods = 24

var taxBrackets = []struct {
	upTo float64 // inclusive upper bound of the bracket, 0 = unbounded
	base float64 // annual tax accumulated below the bracket floor
	rate float64 // marginal rate within the bracket
	from float64 // bracket floor
}{
	{upTo: 250000, base: 0, rate: 0, from: 0},
	{upTo: 400000, base: 0, rate: 0.15, from: 250000},
	{upTo: 800000, base: 22500, rate: 0.20, from: 400000},
	{upTo: 2000000, base: 102500, rate: 0.25, from: 800000},
	{upTo: 0, base: 402500, rate: 0.30, from: 2000000},
}

// ErrNotComputable mirrors the validator's "no hours" rule: a period with a
// missing rate or no worked hours has no defined pay breakdown.
var ErrNotComputable = apperror.New(
	apperror.CodeComputation,
	"salary is not computable: monthly rate must be positive and at least one hour bucket non-zero",
	http.StatusUnprocessableEntity,
)

// Breakdown is the itemized result of a salary calculation. All amounts are
// kept in full floating precision; rounding happens only at presentation.
type Breakdown struct {
	RatePerDay             float64 `json:"ratePerDay"`
	RatePerHour            float64 `json:"ratePerHour"`
	RegularPay             float64 `json:"regularPay"`
	OvertimePay            float64 `json:"overtimePay"`
	HolidayPay             float64 `json:"holidayPay"`
	NightDiffPay           float64 `json:"nightDiffPay"`
	GrossPay               float64 `json:"grossPay"`
	SSSContribution        float64 `json:"sssContribution"`
	PhilHealthContribution float64 `json:"philhealthContribution"`
	PagIBIGContribution    float64 `json:"pagibigContribution"`
	WithholdingTax         float64 `json:"withholdingTax"`
	TotalDeductions        float64 `json:"totalDeductions"`
	NetPay                 float64 `json:"netPay"`
}

// Calculate converts a monthly rate and worked hours into a pay breakdown.
// The monthly rate is spread over a flat 30-day month and an 8-hour day
// regardless of the actual period length.
func Calculate(monthlyRate float64, h workhours.Hours) (Breakdown, error) {
	if monthlyRate <= 0 || !h.AnyWorked() {
		return Breakdown{}, ErrNotComputable
	}

	ratePerDay := monthlyRate / 30
	ratePerHour := ratePerDay / 8

	regularPay := h.Regular * ratePerHour
	overtimePay := h.Overtime * ratePerHour * overtimePremium
	holidayPay := h.Holiday * ratePerHour * holidayPremium
	nightDiffPay := h.NightDiff * ratePerHour * nightDiffPremium

	grossPay := regularPay + overtimePay + holidayPay + nightDiffPay

	sss := grossPay * sssRate
	philHealth := grossPay * philHealthRate
	pagIBIG := grossPay * pagIBIGRate
	if pagIBIG > pagIBIGCap {
		pagIBIG = pagIBIGCap
	}

	withholdingTax := withholdingTaxFor(grossPay)

	totalDeductions := sss + philHealth + pagIBIG + withholdingTax

	return Breakdown{
		RatePerDay:             ratePerDay,
		RatePerHour:            ratePerHour,
		RegularPay:             regularPay,
		OvertimePay:            overtimePay,
		HolidayPay:             holidayPay,
		NightDiffPay:           nightDiffPay,
		GrossPay:               grossPay,
		SSSContribution:        sss,
		PhilHealthContribution: philHealth,
		PagIBIGContribution:    pagIBIG,
		WithholdingTax:         withholdingTax,
		TotalDeductions:        totalDeductions,
		NetPay:                 grossPay - totalDeductions,
	}, nil
}

func withholdingTaxFor(grossPay float64) float64 {
	annualized := grossPay * annualPeriods

	for _, b := range taxBrackets {
		if b.upTo == 0 || annualized <= b.upTo {
			return (b.base + (annualized-b.from)*b.rate) / annualPeriods
		}
	}
	return 0
}
