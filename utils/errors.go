package utils

import (
	"fmt"
	"net/http"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error kinds used across the services
const (
	KindNotFound            = "not_found"
	KindInsufficientBalance = "insufficient_balance"
	KindInvalidState        = "invalid_state"
	KindInvalidSignature    = "invalid_signature"
	KindUnauthorized        = "unauthorized"
	KindForbidden           = "forbidden"
	KindValidation          = "validation_error"
	KindUpstream            = "upstream_error"
)

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message, nil)
}

// InsufficientBalanceError signals the wallet non-negative invariant
func InsufficientBalanceError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInsufficientBalance, message, nil)
}

// InvalidStateError signals an action on a terminal or wrong-state resource
func InvalidStateError(message string) *AppError {
	return NewAppError(http.StatusConflict, KindInvalidState, message, nil)
}

// InvalidSignatureError signals a failed gateway signature check
func InvalidSignatureError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidSignature, message, nil)
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, message, nil)
}

// ValidationAppError creates a 422 validation error
func ValidationAppError(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, KindValidation, message, err)
}

// UpstreamError wraps a payment-gateway failure as a 502
func UpstreamError(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, KindUpstream, message, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
