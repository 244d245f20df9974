package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("PAY_002", "Invalid amount", http.StatusBadRequest)
	assert.Equal(t, "[PAY_002] Invalid amount", e.Error())
}

func TestAppError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, cause)
	assert.Contains(t, e.Error(), "connection refused")
	assert.Equal(t, cause, errors.Unwrap(e))
}

func TestErrorsAs(t *testing.T) {
	var appErr *AppError
	err := error(InternalError(errors.New("boom")))
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{ErrInvalidCredentials(), http.StatusUnauthorized},
		{ErrInvalidToken(), http.StatusUnauthorized},
		{ErrMerchantSuspended(), http.StatusForbidden},
		{ErrNotFound("Payment"), http.StatusNotFound},
		{ErrRefundExceedsAvailable(), http.StatusBadRequest},
		{ErrNotCapturable(), http.StatusBadRequest},
		{ErrRateLimitExceeded(), http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus, tt.err.Code)
	}
}
