package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("WLT_001", "bad amount", http.StatusBadRequest)
	assert.Equal(t, "[WLT_001] bad amount", e.Error())

	wrapped := Wrap("SYS_001", "internal", http.StatusInternalServerError, fmt.Errorf("db down"))
	assert.Equal(t, "[SYS_001] internal: db down", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("root cause")
	e := InternalError(inner)
	assert.True(t, errors.Is(e, inner))
}

func TestEngineErrors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"invalid amount", ErrInvalidAmount(), "WLT_001", http.StatusBadRequest},
		{"customer not accessible", ErrCustomerNotAccessible(), "WLT_002", http.StatusNotFound},
		{"wallet limit", ErrWalletLimitExceeded(10000), "WLT_003", http.StatusBadRequest},
		{"insufficient balance", ErrInsufficientBalance(), "WLT_004", http.StatusBadRequest},
		{"daily limit", ErrDailyLimitExceeded(1000), "WLT_005", http.StatusBadRequest},
		{"customer limit", ErrCustomerLimitReached(1000), "WLT_006", http.StatusBadRequest},
		{"invalid credentials", ErrInvalidCredentials(), "AUTH_001", http.StatusUnauthorized},
		{"rate limited", ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
		{"conflict", ErrConcurrencyConflict(nil), "SYS_002", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestLimitErrors_IncludeConfiguredLimit(t *testing.T) {
	assert.Contains(t, ErrWalletLimitExceeded(10000).Message, "10000")
	assert.Contains(t, ErrDailyLimitExceeded(1000).Message, "1000")
	assert.Contains(t, ErrCustomerLimitReached(500).Message, "500")
}

func TestCustomerNotAccessible_DoesNotLeakCause(t *testing.T) {
	// One message for missing, unassigned and inactive customers.
	e := ErrCustomerNotAccessible()
	assert.NotContains(t, e.Message, "inactive")
	assert.NotContains(t, e.Message, "missing")
}
