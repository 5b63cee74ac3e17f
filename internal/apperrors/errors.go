package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrUnprocessable indicates a well-formed request that a business rule refuses.
var ErrUnprocessable = errors.New("unprocessable request")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates a failure of the backing store or another dependency.
var ErrInternal = errors.New("internal error")

// Ledger failures. Each wraps its category so handlers can map on either.
var (
	ErrInvalidInput       = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrCurrencyMismatch   = fmt.Errorf("%w: currency mismatch", ErrInvalidInput)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrPaymentNotFound    = fmt.Errorf("%w: payment not found", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrAlreadyPaid        = fmt.Errorf("%w: payment already processed", ErrConflict)
	ErrInsufficientFunds  = fmt.Errorf("%w: insufficient funds", ErrUnprocessable)
	ErrAccountInactive    = fmt.Errorf("%w: account is inactive", ErrUnprocessable)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	ErrInvalidRefresh     = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	ErrRefreshExpired     = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInternal) match any 5xx AppError.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Invalid returns an ErrInvalidInput carrying detail.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
