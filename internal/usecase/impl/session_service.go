// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	refreshTokenRepo repository.RefreshTokenRepository
	logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	refreshTokenRepo repository.RefreshTokenRepository,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		refreshTokenRepo: refreshTokenRepo,
		logger:           logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListActiveSessions returns the user's active sessions, newest first.
func (srv *sessionService) ListActiveSessions(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	srv.log(ctx).Debug("Listing active sessions", slog.Any("userID", userID))

	sessions, err := srv.refreshTokenRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list sessions", slog.Any("error", err), slog.Any("userID", userID))

		return nil, domainerrors.NewDatabaseError(err, "failed to list sessions")
	}

	return sessions, nil
}

// RevokeAllSessions revokes every session of the user.
func (srv *sessionService) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Revoking all sessions", slog.Any("userID", userID))

	if err := srv.refreshTokenRepo.RevokeByUserID(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err), slog.Any("userID", userID))

		return domainerrors.NewDatabaseError(err, "failed to revoke all sessions")
	}

	return nil
}

// CleanupExpiredSessions removes expired session rows.
func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.refreshTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		srv.log(ctx).Error("Failed to clean up expired sessions", slog.Any("error", err))

		return 0, domainerrors.NewDatabaseError(err, "failed to clean up expired sessions")
	}

	srv.log(ctx).Info("Cleaned up expired sessions", slog.Int64("deleted", deleted))

	return deleted, nil
}
