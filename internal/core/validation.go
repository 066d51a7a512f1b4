package core

// validation.go provides field-level validation for request objects.
//
// Rules are declared as go-playground/validator struct tags on the request
// types in dto.go. Failures are translated into ValidationError values with
// human-readable messages:
//  1. ValidateStruct returns every failure (for re-rendering a form)
//  2. validateFirst returns only the first failure (for service calls)

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Request field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match any validation failure.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidationResult contains the result of validating a request.
type ValidationResult struct {
	Valid  bool               // True if all validations passed
	Errors []*ValidationError // List of validation errors (empty if Valid)
}

// Messages returns the error messages in field order.
func (r ValidationResult) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// fieldLabels are the display names used in messages.
var fieldLabels = map[string]string{
	"PersonID":    "PersonID",
	"PersonName":  "Person Name",
	"Email":       "Email",
	"Gender":      "Gender",
	"CountryID":   "Country",
	"CountryName": "Country Name",
	"Address":     "Address",
}

// ValidateStruct validates a request and returns all validation errors.
func ValidateStruct(v any) ValidationResult {
	result := ValidationResult{Valid: true}

	err := validate.Struct(v)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Message: err.Error()})
		return result
	}

	result.Valid = false
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, &ValidationError{
			Field:   fe.Field(),
			Value:   fmt.Sprint(fe.Value()),
			Message: messageFor(fe),
		})
	}
	return result
}

// validateFirst validates a request and returns the first error only.
func validateFirst(v any) error {
	result := ValidateStruct(v)
	if result.Valid {
		return nil
	}
	return result.Errors[0]
}

// messageFor renders the message for a failed rule.
func messageFor(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "Gender":
			return "A gender must be selected"
		case "CountryID":
			return "A country must be selected"
		}
		return label + " can't be blank"
	case "email":
		return "Invalid Email"
	case "max":
		return fmt.Sprintf("%s can't exceed %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid"
	}
}
