package errors

import (
	"net/http"

	"locator/internal/domain/entity"
	"locator/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithCause attaches the underlying failure. The result still matches e with errors.Is
// and exposes e's codes through errors.As, while cause stays reachable for logging.
func (e *BaseError) WithCause(cause error) error {
	if cause == nil {
		return errors.WithStack(e)
	}

	return errors.WithStack(&causedError{BaseError: e, cause: cause})
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

type causedError struct {
	*BaseError
	cause error
}

func (e *causedError) Error() string {
	return e.message + ": " + e.cause.Error()
}

func (e *causedError) Unwrap() []error {
	return []error{e.BaseError, e.cause}
}

// Predefined error types
var (
	// Routing engine taxonomy
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		string(entity.ErrorKindPermissionDenied),
		"Location permission was denied",
		"",
	)

	ErrLocationUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		string(entity.ErrorKindLocationUnavailable),
		"Current location is unavailable",
		"",
	)

	ErrCatalogFetchFailed = NewBaseError(
		http.StatusBadGateway,
		string(entity.ErrorKindCatalogFetchFailed),
		"Clinic list could not be refreshed",
		"",
	)

	ErrRouteResolutionFailed = NewBaseError(
		http.StatusBadGateway,
		string(entity.ErrorKindRouteResolutionFailed),
		"No route is available to this clinic",
		"",
	)

	ErrEmptyCoordinateSet = NewBaseError(
		http.StatusInternalServerError,
		string(entity.ErrorKindEmptyCoordinateSet),
		"Cannot fit a viewport to an empty coordinate set",
		"",
	)

	// Session and view errors
	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"No open session for this user",
		"",
	)

	ErrViewNotFound = NewBaseError(
		http.StatusNotFound,
		"VIEW_NOT_FOUND",
		"Map view not found",
		"",
	)

	ErrClinicNotFound = NewBaseError(
		http.StatusNotFound,
		"CLINIC_NOT_FOUND",
		"Clinic not found in the current catalog",
		"",
	)

	ErrNoPendingPrompt = NewBaseError(
		http.StatusConflict,
		"NO_PENDING_PROMPT",
		"No permission prompt is waiting for an answer",
		"",
	)

	ErrReportingUnsupported = NewBaseError(
		http.StatusConflict,
		"REPORTING_UNSUPPORTED",
		"The configured location platform does not accept device reports",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)
)

// Kind maps err to the ErrorKind of the outermost AppError in its tree.
// It returns the empty kind when err carries no taxonomy error.
func Kind(err error) entity.ErrorKind {
	if err == nil {
		return ""
	}

	var appErr AppError
	if !errors.As(err, &appErr) {
		return ""
	}

	kind := entity.ErrorKind(appErr.ErrorCode())
	if !kind.Valid() {
		return ""
	}

	return kind
}
