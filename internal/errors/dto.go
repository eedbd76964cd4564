package errors

import "github.com/cockroachdb/errors"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the wire representation for a failed operation.
// The hint chain is what the caller is allowed to see.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	display := errors.FlattenHints(err)
	if display == "" {
		var ie *InternalError
		if errors.As(err, &ie) {
			display = ie.Message
		} else {
			display = "something went wrong"
		}
	}

	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Display:       display,
			InternalError: err.Error(),
		},
	}
}
