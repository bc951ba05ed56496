// Package validator bridges ozzo-validation errors into layered error
// codes.
package validator

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/modring/go-modring-framework/errcode"
)

// Validatable is anything that can validate itself.
type Validatable interface {
	Validate() error
}

// ValidateRequest validates v and converts ozzo field errors into a
// LayeredError carrying the per-field messages.
func ValidateRequest(v Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validation.Errors); ok {
		return ConvertValidationError(validationErrs)
	}

	return err
}

// ConvertValidationError flattens ozzo field errors into one coded
// error with a "fields" data entry.
func ConvertValidationError(validationErrs validation.Errors) error {
	fields := make(map[string]string)
	for field, fieldErr := range validationErrs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}

	return errcode.New(
		1, 1010,
		"common",
		"error.common.validation_failed",
		"validation failed",
	).WithData("fields", fields)
}
