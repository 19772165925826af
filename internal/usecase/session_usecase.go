package usecase

import (
	"context"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase defines session management on top of the session store.
type SessionUsecase interface {
	// ListActiveSessions returns the user's active sessions, newest first.
	ListActiveSessions(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// RevokeAllSessions revokes every session of the user ("logout everywhere").
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error

	// CleanupExpiredSessions removes expired session rows and reports the count.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
