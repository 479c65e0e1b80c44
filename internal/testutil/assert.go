package testutil

import (
	"testing"

	apperrors "github.com/runvoy/contactform/internal/errors"

	"github.com/stretchr/testify/assert"
)

// AssertAppErrorCode checks if the error has a specific error code.
func AssertAppErrorCode(t *testing.T, err error, expectedCode string, _ ...any) bool {
	t.Helper()
	code := apperrors.GetErrorCode(err)
	if code != expectedCode {
		return assert.Fail(t, "Error code mismatch", "Expected error code %q, got %q", expectedCode, code)
	}
	return true
}

// AssertAppErrorStatus checks if the error has a specific HTTP status code.
func AssertAppErrorStatus(t *testing.T, err error, expectedStatus int, _ ...any) bool {
	t.Helper()
	status := apperrors.GetStatusCode(err)
	if status != expectedStatus {
		return assert.Fail(t, "Status code mismatch", "Expected status %d, got %d", expectedStatus, status)
	}
	return true
}
