package changerequest

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	changerequesterrors "go-payroll/internal/changerequest/errors"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/apperror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return changerequesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.Wrap(err, apperror.CodeConflict, "change request number collision, retry the submission", http.StatusConflict)
	}

	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "the data store is temporarily unavailable", http.StatusServiceUnavailable)
}

// mapEmployeeLookupError attributes a failed employee fetch to the employee,
// not the change request being processed.
func mapEmployeeLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "the data store is temporarily unavailable", http.StatusServiceUnavailable)
}
