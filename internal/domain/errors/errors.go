// Package errors defines the application error taxonomy and the AppError
// contract the delivery layer uses to map failures onto the response envelope.
package errors

import (
	"net/http"

	"tasknest/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

var (
	// ErrValidationFailed covers empty or malformed input.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
	)

	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User with that email already exists",
	)

	// ErrInvalidCredentials deliberately does not reveal whether the email or
	// the password was wrong.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
	)

	// ErrUnauthorized is the single outward-facing message for every token
	// failure. Internal logs distinguish the causes; callers must not.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Invalid or expired token",
	)

	// ErrReuseDetected marks a rotated or revoked refresh token being
	// presented again. The caller still sees a generic 401; the side effect
	// is that every session for the identity gets revoked first.
	ErrReuseDetected = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_REUSED",
		"Invalid or expired token",
	)

	// ErrUserNotFound is returned when a token's subject no longer exists.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	// ErrTodoNotFound covers both an unknown todo id and a todo owned by a
	// different user. The two cases must stay indistinguishable.
	ErrTodoNotFound = NewBaseError(
		http.StatusNotFound,
		"TODO_NOT_FOUND",
		"Todo item not found",
	)

	// ErrInternalError is the generic server-side fault.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// DatabaseError wraps a storage failure. The cause is logged with context;
// only the generic message leaves the process.
type DatabaseError struct {
	*BaseError
	cause error
}

// NewDatabaseError creates a DatabaseError wrapping the given cause.
func NewDatabaseError(cause error, message string) *DatabaseError {
	return &DatabaseError{
		BaseError: NewBaseError(http.StatusInternalServerError, "DATABASE_ERROR", "Database error"),
		cause:     errors.Wrap(cause, message),
	}
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *DatabaseError) Unwrap() error {
	return e.cause
}
