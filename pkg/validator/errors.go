package validator

import (
	"strings"
)

// ValidationErrors represents a collection of validation errors.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// FieldError represents a single field validation error.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Value   interface{} `json:"value,omitempty"`
	Param   string      `json:"param,omitempty"`
	Message string      `json:"message"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if v == nil || len(v.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("validation failed: ")
	for i, fe := range v.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fe.Message)
	}
	return sb.String()
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// Count returns the number of validation errors.
func (v *ValidationErrors) Count() int {
	if v == nil {
		return 0
	}
	return len(v.Errors)
}

// First returns the first error message, or empty string if no errors.
func (v *ValidationErrors) First() string {
	if v == nil || len(v.Errors) == 0 {
		return ""
	}
	return v.Errors[0].Message
}

// ByField returns errors grouped by field name.
func (v *ValidationErrors) ByField() map[string][]string {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}

	result := make(map[string][]string)
	for _, fe := range v.Errors {
		result[fe.Field] = append(result[fe.Field], fe.Message)
	}
	return result
}

// ToMap converts validation errors to a map suitable for a JSON response body.
func (v *ValidationErrors) ToMap() map[string]interface{} {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}

	return map[string]interface{}{
		"errors": v.Errors,
		"count":  len(v.Errors),
	}
}

// String implements fmt.Stringer.
func (v *ValidationErrors) String() string {
	return v.Error()
}

// Append adds a field error to the collection.
func (v *ValidationErrors) Append(field, tag, message string) {
	v.Errors = append(v.Errors, FieldError{
		Field:   field,
		Tag:     tag,
		Message: message,
	})
}

// NewValidationError creates a new ValidationErrors with a single error.
func NewValidationError(field, tag, message string) *ValidationErrors {
	return &ValidationErrors{
		Errors: []FieldError{
			{
				Field:   field,
				Tag:     tag,
				Message: message,
			},
		},
	}
}
