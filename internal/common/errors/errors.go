// Package errors provides standardized error handling for the activities service.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Directory errors
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeNotSignedUp      ErrorCode = "NOT_SIGNED_UP"
	ErrCodeActivityFull     ErrorCode = "ACTIVITY_FULL"

	// Request errors
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"

	// Seed / startup errors
	ErrCodeSeedInvalid ErrorCode = "SEED_INVALID"

	// Infrastructure errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeEventPublishFailed       ErrorCode = "EVENT_PUBLISH_FAILED"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is reports whether target is a StandardError with the same code, so
// errors.Is(err, ErrActivityNotFound) matches any not-found error.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrActivityNotFound = &StandardError{Code: ErrCodeActivityNotFound}
	ErrAlreadySignedUp  = &StandardError{Code: ErrCodeAlreadySignedUp}
	ErrNotSignedUp      = &StandardError{Code: ErrCodeNotSignedUp}
	ErrActivityFull     = &StandardError{Code: ErrCodeActivityFull}
	ErrSeedInvalid      = &StandardError{Code: ErrCodeSeedInvalid}
)

// ==========================
// 2. Error Constructors
// ==========================

// NewActivityNotFoundError is returned when the activity name is unknown.
func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activity),
		Retryable: false,
		Metadata:  map[string]interface{}{"activity": activity},
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError is returned when the email is already on the roster.
func NewAlreadySignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   "Student is already signed up",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Retryable: false,
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewNotSignedUpError is returned when unregistering an email that is not on the roster.
func NewNotSignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotSignedUp,
		Message:   "Student is not signed up for this activity",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Retryable: false,
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFullError is returned when capacity enforcement rejects a signup.
func NewActivityFullError(activity string, maxParticipants int) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityFull,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s, max_participants: %d", activity, maxParticipants),
		Retryable: false,
		Metadata:  map[string]interface{}{"activity": activity, "maxParticipants": maxParticipants},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingParameterError is returned when a required query parameter is absent.
func NewMissingParameterError(param string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   fmt.Sprintf("%s query parameter is required", param),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSeedInvalidError wraps seed file problems found at load time.
func NewSeedInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSeedInvalid,
		Message:   "Seed file is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEventPublishFailedError records a sink that could not accept a roster event.
func NewEventPublishFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventPublishFailed,
		Message:   "Roster event could not be published",
		Details:   fmt.Sprintf("sink: %s, error: %s", sink, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"sink": sink},
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeActivityNotFound:         http.StatusNotFound,
	ErrCodeAlreadySignedUp:          http.StatusBadRequest,
	ErrCodeNotSignedUp:              http.StatusBadRequest,
	ErrCodeActivityFull:             http.StatusBadRequest,
	ErrCodeMissingParameter:         http.StatusUnprocessableEntity,
	ErrCodeDatabaseConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeEventPublishFailed:       http.StatusInternalServerError,
	ErrCodeInternal:                 http.StatusInternalServerError,
}

// HTTPStatus returns the response status for code, 500 if unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ACTIVITY") || strings.Contains(codeStr, "SIGNED_UP"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "PARAMETER"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SEED"):
		return "SEED"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "EVENT"):
		return "EVENTS"
	default:
		return "UNKNOWN"
	}
}
