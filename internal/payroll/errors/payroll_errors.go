package errors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSalaryPeriodNotFound = apperror.New(apperror.CodeNotFound, "salary period not found", http.StatusNotFound)
	ErrInvalidPeriodID      = apperror.New(apperror.CodeInvalidInput, "invalid salary period id", http.StatusBadRequest)
	ErrInvalidPeriodDate    = apperror.New(apperror.CodeInvalidInput, "period dates must be valid YYYY-MM-DD values", http.StatusBadRequest)
	ErrPeriodNotAscending   = apperror.New(apperror.CodeInvalidInput, "period start must be strictly before period end", http.StatusBadRequest)
	ErrPeriodAlreadyExists  = apperror.New(apperror.CodeConflict, "a salary period starting on that date already exists for this employee", http.StatusConflict)
	ErrPayslipNotGenerated  = apperror.New(apperror.CodeNotFound, "payslip has not been generated for this period yet", http.StatusNotFound)
)
