package payroll

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
)

// mapRepositoryError translates storage-level failures into domain errors.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrSalaryPeriodNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return payrollerrors.ErrPeriodAlreadyExists
	}

	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "the data store is temporarily unavailable", http.StatusServiceUnavailable)
}

// mapEmployeeLookupError attributes a failed employee fetch to the employee,
// not the salary period being created.
func mapEmployeeLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "the data store is temporarily unavailable", http.StatusServiceUnavailable)
}
