package geofenceerrors

import (
	"net/http"

	"go-timely/internal/shared/apperror"
)

var (
	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"radius must be a positive number of meters",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be enter or exit",
		http.StatusBadRequest,
	)
	ErrUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"geofencing is not available",
		http.StatusServiceUnavailable,
	)
)
