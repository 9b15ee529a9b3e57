package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Engine (WLT) ----

func ErrInvalidAmount() *AppError {
	return New("WLT_001", "Valid points and cash equivalent value are required", http.StatusBadRequest)
}

// ErrCustomerNotAccessible covers missing, unassigned and inactive customers
// with one message so callers cannot probe which case applied.
func ErrCustomerNotAccessible() *AppError {
	return New("WLT_002", "Customer not found or not assigned to you", http.StatusNotFound)
}

func ErrWalletLimitExceeded(limit int64) *AppError {
	return New("WLT_003", fmt.Sprintf("Top-up would exceed maximum wallet balance of %d", limit), http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("WLT_004", "Insufficient wallet balance", http.StatusBadRequest)
}

func ErrDailyLimitExceeded(limit int64) *AppError {
	return New("WLT_005", fmt.Sprintf("Daily redemption limit of %d points exceeded", limit), http.StatusBadRequest)
}

func ErrCustomerLimitReached(limit int64) *AppError {
	return New("WLT_006", fmt.Sprintf("Maximum customers limit of %d reached", limit), http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "An account already exists with this email", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrAccountInactive(message string) *AppError {
	return New("AUTH_004", message, http.StatusUnauthorized)
}

func ErrForbiddenRole() *AppError {
	return New("AUTH_005", "You do not have permission to perform this action", http.StatusForbidden)
}

// ---- Resources (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrConcurrencyConflict reports that transparent conflict retries were
// exhausted. Transient; never a business rejection.
func ErrConcurrencyConflict(err error) *AppError {
	return Wrap("SYS_002", "Operation conflicted with concurrent updates, please retry", http.StatusServiceUnavailable, err)
}

// Validation returns a WLT_001-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("WLT_001", message, http.StatusBadRequest)
}
