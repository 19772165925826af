// Package middleware contains the HTTP middlewares for the delivery layer.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/delivery/http/response"
	"tasknest/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userIDContextKey is the echo.Context key the authenticated user id is stored under.
const userIDContextKey = "userID"

// unauthorizedMessage is the single outward-facing message for every token
// failure on the gate. Logs carry the real cause; responses never do.
const unauthorizedMessage = "Invalid or expired token"

// AuthMiddleware validates the bearer access token on protected routes.
type AuthMiddleware struct {
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenService service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		logger:       logger,
	}
}

// Authenticate verifies the Authorization header carries a valid access token
// and stores the authenticated user id on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			logger.Warn("Auth gate: missing Authorization header", slog.String("path", c.Path()))

			return response.Unauthorized(c, unauthorizedMessage)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			logger.Warn("Auth gate: malformed Authorization header", slog.String("path", c.Path()))

			return response.Unauthorized(c, unauthorizedMessage)
		}

		claims, err := m.tokenService.Verify(tokenString, service.TokenKindAccess)
		if err != nil {
			// The log distinguishes expiry from tampering from kind confusion;
			// the response must not.
			logger.Warn("Auth gate: token rejected",
				slog.String("path", c.Path()), slog.Any("error", err))

			return response.Unauthorized(c, unauthorizedMessage)
		}

		c.Set(userIDContextKey, claims.UserID)

		return next(c)
	}
}

// GetUserID returns the authenticated user id set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDContextKey).(uuid.UUID)

	return userID, ok
}
