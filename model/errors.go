package model

import "fmt"

// Standard error codes.
const (
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrValidationError  = "VALIDATION_ERROR"
	ErrInternalError    = "INTERNAL_ERROR"
	ErrUpstreamError    = "UPSTREAM_ERROR"
	ErrSignatureInvalid = "SIGNATURE_INVALID"
	ErrDuplicateEvent   = "DUPLICATE_EVENT"
)

// ErrorEnvelope is the standard error response envelope returned by the
// service. It implements the error interface.
type ErrorEnvelope struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorEnvelope) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewBadRequestError returns a BAD_REQUEST error.
func NewBadRequestError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrBadRequest, Message: msg}
}

// NewUnauthorizedError returns an UNAUTHORIZED error.
func NewUnauthorizedError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrUnauthorized, Message: msg}
}

// NewForbiddenError returns a FORBIDDEN error.
func NewForbiddenError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrForbidden, Message: msg}
}

// NewNotFoundError returns a NOT_FOUND error.
func NewNotFoundError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrNotFound, Message: msg}
}

// NewConflictError returns a CONFLICT error.
func NewConflictError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrConflict, Message: msg}
}

// NewValidationError returns a VALIDATION_ERROR with field-level details.
func NewValidationError(details []FieldError) *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrValidationError,
		Message: "One or more fields are invalid",
		Details: details,
	}
}

// NewInternalError returns an INTERNAL_ERROR.
func NewInternalError() *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrInternalError,
		Message: "An unexpected error occurred",
	}
}

// NewUpstreamError returns an UPSTREAM_ERROR for a failing collaborator.
func NewUpstreamError(msg string) *ErrorEnvelope {
	return &ErrorEnvelope{Code: ErrUpstreamError, Message: msg}
}

// NewSignatureInvalidError returns a SIGNATURE_INVALID error. The payment
// webhook handler fails closed on it.
func NewSignatureInvalidError() *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrSignatureInvalid,
		Message: "Webhook signature verification failed",
	}
}

// NewDuplicateEventError returns a DUPLICATE_EVENT error for an external
// event id that was already claimed.
func NewDuplicateEventError(eventID string) *ErrorEnvelope {
	return &ErrorEnvelope{
		Code:    ErrDuplicateEvent,
		Message: fmt.Sprintf("event %q was already processed", eventID),
	}
}
