package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.English)

// humanField turns a json field name into a label: radius_m -> Radius M.
func humanField(s string) string {
	return fieldCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError reports the first failed rule of a binding error as an
// INVALID_INPUT AppError. Anything else (bad JSON, wrong types) collapses to
// a generic message.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	fe := errs[0]
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return RequiredField(field)
	case "oneof":
		return invalidInput(fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
	case "min", "gte":
		return invalidInput(fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	case "max", "lte":
		return invalidInput(fmt.Sprintf("%s must be at most %s", field, fe.Param()))
	default:
		return InvalidField(field)
	}
}

func invalidInput(msg string) *AppError {
	return New(CodeInvalidInput, msg, http.StatusBadRequest)
}
