package fields

import (
	"context"
	"fmt"
)

// ErrorKind classifies a field validation failure.
type ErrorKind string

const (
	ErrRequired      ErrorKind = "required"
	ErrOutOfRange    ErrorKind = "out_of_range"
	ErrBadFormat     ErrorKind = "bad_format"
	ErrInvalidOption ErrorKind = "invalid_option"
	ErrNotFound      ErrorKind = "not_found"
	ErrRowCount      ErrorKind = "row_count"
)

// ValidationError reports one constraint violation on one field.
// Validation never panics and never aborts a batch: callers accumulate
// errors across a whole field set with ValidateAll.
type ValidationError struct {
	Field   string    // field id
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// ValidateAll validates every field and returns all violations found.
// A corrupt or failing field never stops the rest of the batch.
func ValidateAll(ctx context.Context, fs []Field) []*ValidationError {
	var errs []*ValidationError
	for _, f := range fs {
		if err := f.Validate(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
