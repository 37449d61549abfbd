package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
	ErrUnauthorized = New(CodeUnauthorized, "User is not authenticated", http.StatusUnauthorized)
	ErrRateLimited  = New(CodeRateLimited, "Too many requests, slow down", http.StatusTooManyRequests)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}
