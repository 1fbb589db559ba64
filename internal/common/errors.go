package common

import "errors"

// Error codes used across the storefront. VALIDATION never reaches the
// network, REJECTED carries a server-provided message verbatim and
// UNAVAILABLE covers transport failures surfaced with a generic fallback.
const (
	CodeValidation  = "VALIDATION"
	CodeRejected    = "REJECTED"
	CodeUnavailable = "UNAVAILABLE"
)

// FallbackMessage is shown to the user when the server did not supply one.
const FallbackMessage = "Something went wrong. Please try again."

// AppError represents an error with an attached code and user-facing message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Validation constructs a local validation error that must not trigger a request.
func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// Rejected wraps a server-side rejection (success:false in a 2xx body).
func Rejected(message string) *AppError {
	if message == "" {
		message = FallbackMessage
	}
	return &AppError{Code: CodeRejected, Message: message}
}

// Unavailable wraps a transport failure or non-2xx response.
func Unavailable(err error) *AppError {
	return &AppError{Code: CodeUnavailable, Message: FallbackMessage, Err: err}
}

// UserMessage resolves the message that should be surfaced for err.
// Server-rejected and validation errors speak for themselves; everything
// else collapses to the generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" && appErr.Code != CodeUnavailable {
		return appErr.Message
	}
	return FallbackMessage
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
