// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ErrorHandler turns errors into HTTP responses with consistent logging.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err and returns the status and body to send.
// Server-side failures are logged at error level, client failures at warn.
func (h *ErrorHandler) Handle(err error) (int, ErrorResponse) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        status,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if status >= 500 {
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	return status, ErrorResponse{Detail: stdErr.Message}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
