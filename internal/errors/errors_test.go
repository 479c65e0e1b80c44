package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "error with cause",
			err: &AppError{
				Code:       ErrCodeInvalidRequest,
				Message:    "validation failed",
				StatusCode: http.StatusBadRequest,
				Cause:      errors.New("field x is required"),
			},
			expected: "validation failed: field x is required",
		},
		{
			name: "error without cause",
			err: &AppError{
				Code:       ErrCodeInvalidRequest,
				Message:    "missing body",
				StatusCode: http.StatusBadRequest,
			},
			expected: "missing body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := ErrInternalError("something went wrong", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		target   error
		expected bool
	}{
		{
			name:     "same error code matches",
			err:      ErrDatabaseError("put failed", nil),
			target:   &AppError{Code: ErrCodeDatabaseError},
			expected: true,
		},
		{
			name:     "different error code does not match",
			err:      ErrDatabaseError("put failed", nil),
			target:   &AppError{Code: ErrCodeEmailError},
			expected: false,
		},
		{
			name:     "empty code never matches",
			err:      &AppError{Message: "x"},
			target:   &AppError{},
			expected: false,
		},
		{
			name:     "non AppError target",
			err:      ErrBadRequest("bad", nil),
			target:   errors.New("bad"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Is(tt.target))
		})
	}
}

func TestNewClientError(t *testing.T) {
	err := NewClientError(http.StatusBadRequest, ErrCodeInvalidRequest, "bad", nil)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	assert.Panics(t, func() {
		NewClientError(http.StatusInternalServerError, ErrCodeInternalError, "boom", nil)
	})
}

func TestNewServerError(t *testing.T) {
	err := NewServerError(http.StatusInternalServerError, ErrCodeInternalError, "boom", nil)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)

	assert.Panics(t, func() {
		NewServerError(http.StatusBadRequest, ErrCodeInvalidRequest, "bad", nil)
	})
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"bad request", ErrBadRequest("bad", cause), http.StatusBadRequest, ErrCodeInvalidRequest},
		{"internal", ErrInternalError("boom", cause), http.StatusInternalServerError, ErrCodeInternalError},
		{"database", ErrDatabaseError("put", cause), http.StatusInternalServerError, ErrCodeDatabaseError},
		{"email", ErrEmailError("send", cause), http.StatusInternalServerError, ErrCodeEmailError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, cause, tt.err.Cause)
		})
	}
}

func TestGetters(t *testing.T) {
	plain := errors.New("plain failure")
	wrapped := fmt.Errorf("wrapped: %w", ErrEmailError("failed to send", errors.New("throttled")))

	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(plain))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(wrapped))
	assert.Equal(t, http.StatusBadRequest, GetStatusCode(ErrBadRequest("bad", nil)))

	assert.Empty(t, GetErrorCode(plain))
	assert.Equal(t, ErrCodeEmailError, GetErrorCode(wrapped))

	assert.Equal(t, "plain failure", GetErrorMessage(plain))
	assert.Equal(t, "failed to send", GetErrorMessage(wrapped))

	assert.Equal(t, "plain failure", GetErrorDetails(plain))
	assert.Equal(t, "throttled", GetErrorDetails(wrapped))
	assert.Equal(t, "bad", GetErrorDetails(ErrBadRequest("bad", nil)))
}

func TestIsClientError(t *testing.T) {
	require.True(t, IsClientError(ErrBadRequest("bad", nil)))
	require.False(t, IsClientError(ErrDatabaseError("db", nil)))
	require.False(t, IsClientError(errors.New("plain")))
}
