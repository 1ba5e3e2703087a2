package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnrecognizedFormat indicates the CSV layout matched no known dialect.
// The whole file is rejected before any writes.
var ErrUnrecognizedFormat = errors.New("unrecognized statement format")

// ErrEmptyFile indicates an import was attempted with no usable content.
var ErrEmptyFile = errors.New("empty statement file")

// ErrResolution indicates a required account could not be resolved during
// posting (missing category or equity seed). Batch-fatal: the whole posting
// batch rolls back.
var ErrResolution = errors.New("account resolution failed")

// ErrConflict indicates a state transition lost a race: the row no longer
// satisfies the transition's precondition (e.g. posting a transaction that
// another batch already posted).
var ErrConflict = errors.New("conflicting state transition")

// ErrInternal indicates an unexpected internal failure (persistence errors,
// broken invariants). Callers see a 5xx-equivalent and may retry the batch.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code, used by
// the repository layer where no finer-grained sentinel applies.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
