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

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnbalanced indicates that a journal entry's debit and credit sums are not equal.
// Checked before any write is issued; an unbalanced entry never reaches the database.
var ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

// ErrReferentialIntegrity indicates that a deletion is blocked by existing references,
// e.g. an account that still has journal lines pointing at it.
var ErrReferentialIntegrity = errors.New("operation blocked by existing references")

// ErrSchemaMismatch indicates that an expected column is absent from the deployed
// schema. It is recoverable: balance aggregation demotes to the next query tier
// instead of failing the caller.
var ErrSchemaMismatch = errors.New("expected column absent from schema")

// ErrTransactionFailed indicates that an atomic multi-statement operation aborted
// and every statement in it was rolled back.
var ErrTransactionFailed = errors.New("atomic operation aborted and rolled back")

// AppError wraps an underlying error with an application-level code and a
// human-readable message.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
