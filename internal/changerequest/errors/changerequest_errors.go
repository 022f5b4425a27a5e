package errors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(apperror.CodeNotFound, "change request not found", http.StatusNotFound)
	ErrInvalidRequestID = apperror.New(apperror.CodeInvalidInput, "invalid change request id", http.StatusBadRequest)

	// Terminal states are final; re-deciding a processed request conflicts.
	ErrRequestAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"change request has already been processed",
		http.StatusConflict,
	)

	ErrCommentsRequired = apperror.NewField(
		apperror.CodeInvalidInput,
		"adminComments",
		"comments are required when rejecting a change request",
		http.StatusBadRequest,
	)
)
