// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/response"
	"tasknest/internal/domain/entity"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userResponse is the outward shape of an identity. The password hash never
// leaves the process.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// tokenPairResponse carries a freshly minted token pair.
type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// sessionResponse is the outward shape of a session row. The token hash stays
// internal.
type sessionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserHandler holds dependencies for credential and session handlers.
type UserHandler struct {
	userUC    usecase.UserUsecase
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUC usecase.UserUsecase, sessionUC usecase.SessionUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUC:    userUC,
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Root answers the public hello endpoint.
func Root(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Welcome to the TaskNest API",
	})
}

// HealthCheck answers the public health endpoint.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"message": "API is healthy and running",
	})
}

// Register handles the registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"user": newUserResponse(output.User),
	})
}

// Login handles the login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"tokens": tokenPairResponse{
			AccessToken:  output.AccessToken,
			RefreshToken: output.RefreshToken,
		},
		"user": newUserResponse(output.User),
	})
}

// Refresh handles the refresh token rotation request.
func (h *UserHandler) Refresh(c echo.Context) error {
	var input usecase.RefreshInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid refresh input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Refresh(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout revokes the presented refresh token.
func (h *UserHandler) Logout(c echo.Context) error {
	var input usecase.LogoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid logout input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.userUC.Logout(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessMessage(c, http.StatusOK, "Successfully logged out")
}

// LogoutAll revokes every session of the authenticated user.
func (h *UserHandler) LogoutAll(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}

	if err := h.sessionUC.RevokeAllSessions(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.SuccessMessage(c, http.StatusOK, "All sessions revoked")
}

// ListSessions returns the authenticated user's active sessions.
func (h *UserHandler) ListSessions(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}

	sessions, err := h.sessionUC.ListActiveSessions(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionResponse{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
		})
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"sessions": items,
	})
}

// Me returns the identity behind the access token.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or expired token")
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": newUserResponse(user),
	})
}
