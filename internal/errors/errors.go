// Package errors provides custom error types for the ledgersync API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidEntity       = &AppError{Code: "INVALID_ENTITY", Message: "Entity is not one of the accepted values", StatusCode: http.StatusBadRequest}
)

// Merchant rule errors.
var (
	ErrRuleNotFound      = &AppError{Code: "RULE_NOT_FOUND", Message: "Merchant rule not found", StatusCode: http.StatusNotFound}
	ErrDuplicateMerchant = &AppError{Code: "DUPLICATE_MERCHANT", Message: "A rule for this merchant already exists", StatusCode: http.StatusConflict}
)

// Merchant alias errors.
var (
	ErrAliasNotFound  = &AppError{Code: "ALIAS_NOT_FOUND", Message: "Merchant alias not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAlias = &AppError{Code: "DUPLICATE_ALIAS", Message: "An alias for this raw merchant already exists", StatusCode: http.StatusConflict}
)

// Sync errors.
var (
	ErrSyncInProgress = &AppError{Code: "SYNC_IN_PROGRESS", Message: "A sync run is already in progress", StatusCode: http.StatusConflict}
	ErrSheetWrite     = &AppError{Code: "SHEET_WRITE_FAILED", Message: "Failed to write to the spreadsheet", StatusCode: http.StatusBadGateway}
)
