package timeclockerrors

import (
	"net/http"

	"go-timely/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be clock-in or clock-out",
		http.StatusBadRequest,
	)
	ErrMissingEventID = apperror.RequiredField("id")
	ErrMissingHour    = apperror.RequiredField("hour")
)
