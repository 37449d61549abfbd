package clockapierrors

import (
	"fmt"
	"net/http"

	"go-timely/internal/shared/apperror"
)

var (
	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"No session token stored for the Clock API",
		http.StatusUnauthorized,
	)
	ErrUnreachable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Clock API is unreachable",
		http.StatusServiceUnavailable,
	)
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid clock event ID",
		http.StatusBadRequest,
	)
)

// Upstream converts a non-2xx Clock API response into an AppError. Client
// errors keep their status; everything else becomes a 502.
func Upstream(status int, body string) *apperror.AppError {
	cause := fmt.Errorf("clock api: unexpected status %d: %s", status, body)
	switch status {
	case http.StatusUnauthorized:
		return apperror.Wrap(cause, apperror.CodeUnauthorized, "Clock API rejected the session token", status)
	case http.StatusNotFound:
		return apperror.Wrap(cause, apperror.CodeNotFound, "Clock event not found", status)
	case http.StatusConflict:
		return apperror.Wrap(cause, apperror.CodeConflict, "Clock API reported a conflict", status)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperror.Wrap(cause, apperror.CodeInvalidInput, "Clock API rejected the request", status)
	default:
		return apperror.Wrap(cause, apperror.CodeUpstream, "Clock API request failed", http.StatusBadGateway)
	}
}
