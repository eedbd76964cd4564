package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the billing core. Services mark every returned error
// with exactly one of these so callers can branch without string matching.
var (
	ErrNotFound            = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists       = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation          = new(ErrCodeValidation, "validation error")
	ErrInsufficientBalance = new(ErrCodeInsufficientBalance, "insufficient balance")
	ErrAlreadyResolved     = new(ErrCodeAlreadyResolved, "payout request already resolved")
	ErrAlreadySettled      = new(ErrCodeAlreadySettled, "invoice already settled")
	ErrIO                  = new(ErrCodeIO, "persistence error")
	ErrNotification        = new(ErrCodeNotification, "notification delivery failed")
	ErrInvalidOperation    = new(ErrCodeInvalidOperation, "invalid operation")
	ErrSystem              = new(ErrCodeSystemError, "system error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrAlreadyExists:       http.StatusConflict,
		ErrValidation:          http.StatusBadRequest,
		ErrInsufficientBalance: http.StatusUnprocessableEntity,
		ErrAlreadyResolved:     http.StatusConflict,
		ErrAlreadySettled:      http.StatusConflict,
		ErrIO:                  http.StatusInternalServerError,
		ErrNotification:        http.StatusBadGateway,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrSystem:              http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound            = "not_found"
	ErrCodeAlreadyExists       = "already_exists"
	ErrCodeValidation          = "validation_error"
	ErrCodeInsufficientBalance = "insufficient_balance"
	ErrCodeAlreadyResolved     = "already_resolved"
	ErrCodeAlreadySettled      = "already_settled"
	ErrCodeIO                  = "io_error"
	ErrCodeNotification        = "notification_error"
	ErrCodeInvalidOperation    = "invalid_operation"
	ErrCodeSystemError         = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInsufficientBalance checks if an error is an insufficient balance error
func IsInsufficientBalance(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsAlreadyResolved checks if an error is an already resolved error
func IsAlreadyResolved(err error) bool {
	return errors.Is(err, ErrAlreadyResolved)
}

// IsAlreadySettled checks if an error is an already settled error
func IsAlreadySettled(err error) bool {
	return errors.Is(err, ErrAlreadySettled)
}

// IsIO checks if an error is a persistence error
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsNotification checks if an error is a notification delivery error
func IsNotification(err error) bool {
	return errors.Is(err, ErrNotification)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
