package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	warns  []string
	errors []string
}

func (r *recordingLogger) Warn(msg string, _ map[string]interface{}) { r.warns = append(r.warns, msg) }
func (r *recordingLogger) Error(msg string, _ map[string]interface{}) {
	r.errors = append(r.errors, msg)
}

func TestDirectoryErrors_MessagesAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *StandardError
		wantStatus int
		wantText   string
	}{
		{"not found", NewActivityNotFoundError("Chess Club"), http.StatusNotFound, "not found"},
		{"duplicate", NewAlreadySignedUpError("Chess Club", "a@b.edu"), http.StatusBadRequest, "already signed up"},
		{"not registered", NewNotSignedUpError("Chess Club", "a@b.edu"), http.StatusBadRequest, "not signed up"},
		{"full", NewActivityFullError("Chess Club", 12), http.StatusBadRequest, "full"},
		{"missing email", NewMissingParameterError("email"), http.StatusUnprocessableEntity, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err.Code))
			assert.Contains(t, strings.ToLower(tt.err.Message), tt.wantText)
			assert.False(t, tt.err.Retryable)
		})
	}
}

func TestStandardError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("signup: %w", NewAlreadySignedUpError("Drama Club", "x@y.edu"))

	assert.True(t, stderrors.Is(wrapped, ErrAlreadySignedUp))
	assert.False(t, stderrors.Is(wrapped, ErrNotSignedUp))
	assert.False(t, stderrors.Is(stderrors.New("plain"), ErrActivityNotFound))
}

func TestHTTPStatus_Unmapped(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("SOMETHING_ELSE"))
}

func TestErrorHandler_Handle(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	status, body := h.Handle(NewActivityNotFoundError("Nope"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Activity not found", body.Detail)
	assert.Len(t, log.warns, 1)

	status, body = h.Handle(stderrors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Detail)
	assert.Len(t, log.errors, 1)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DIRECTORY", GetErrorCategory(ErrCodeActivityNotFound))
	assert.Equal(t, "DIRECTORY", GetErrorCategory(ErrCodeNotSignedUp))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeMissingParameter))
	assert.Equal(t, "SEED", GetErrorCategory(ErrCodeSeedInvalid))
	assert.Equal(t, "EVENTS", GetErrorCategory(ErrCodeEventPublishFailed))
	assert.Equal(t, "UNKNOWN", GetErrorCategory("X"))
}

func TestErrorHandler_ReadinessAndInternal(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	status, body := h.Handle(NewDatabaseConnectionFailedError(stderrors.New("redis ping failed")))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Database connection error", body.Detail)
	assert.Len(t, log.errors, 1)

	normalized := Normalize(fmt.Errorf("wrapped: %w", stderrors.New("boom")))
	assert.Equal(t, ErrCodeInternal, normalized.Code)
	assert.Equal(t, "wrapped: boom", normalized.Details)
	assert.Equal(t, NewInternalError(stderrors.New("x")).Message, normalized.Message)
}
