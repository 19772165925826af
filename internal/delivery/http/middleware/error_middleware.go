package middleware

import (
	"log/slog"
	"net/http"

	"tasknest/internal/delivery/http/response"
	domainerrors "tasknest/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware translates errors escaping the handlers into the response
// envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as Echo's HTTPErrorHandler. Application errors
// keep their status and message; anything unrecognized becomes a logged 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
				slog.String("errorCode", appErr.ErrorCode()),
				slog.Any("error", err),
			)

			_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

			return
		}

		_ = response.Fail(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		if httpErr.Code >= http.StatusInternalServerError {
			_ = response.Error(c, httpErr.Code, message)
		} else {
			_ = response.Fail(c, httpErr.Code, message)
		}

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)

	_ = response.Error(c, http.StatusInternalServerError, "Internal server error")
}
