// Package response implements the unified API response envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status is the outcome discriminator carried in every response body.
type Status string

const (
	// StatusSuccess marks a fulfilled request.
	StatusSuccess Status = "success"
	// StatusFail marks a request the client can correct and retry.
	StatusFail Status = "fail"
	// StatusError marks a server-side fault.
	StatusError Status = "error"
)

// Envelope is the body shape of every response.
type Envelope struct {
	Status  Status `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{
		Status: StatusSuccess,
		Data:   data,
	})
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{
		Status:  StatusSuccess,
		Message: message,
	})
}

// Fail writes a fail envelope for client-correctable requests (4xx).
func Fail(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Status:  StatusFail,
		Message: message,
	})
}

// Error writes an error envelope for server faults (5xx).
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Status:  StatusError,
		Message: message,
	})
}

// BindingError reports a request body that could not be bound.
func BindingError(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, message)
}

// Unauthorized writes the generic 401 fail envelope.
func Unauthorized(c echo.Context, message string) error {
	return Fail(c, http.StatusUnauthorized, message)
}
