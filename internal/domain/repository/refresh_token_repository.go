package repository

import (
	"context"
	"errors"
	"time"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when no session row matches the hash.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenReused is returned when a rotated or revoked token is
	// presented for rotation again. Callers treat this as a compromise signal.
	ErrRefreshTokenReused = errors.New("refresh token reuse detected")
)

// RefreshTokenRepository is the session store: it tracks issued refresh token
// hashes per user, enabling rotation, revocation, and reuse detection.
type RefreshTokenRepository interface {
	// Create persists a new active session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a session record by its stored hash, whatever its status.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindActiveByUserID retrieves all active, unexpired sessions for a user,
	// newest first.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// MarkRotated flips the session matching oldHash from active to rotated in
	// a single conditional statement and returns the session. Two concurrent
	// rotations of the same token cannot both succeed: the loser receives
	// ErrRefreshTokenReused. An unknown or expired hash yields
	// ErrRefreshTokenNotFound.
	MarkRotated(ctx context.Context, oldHash string, now time.Time) (*entity.RefreshToken, error)

	// RevokeByHash marks the matching session revoked. Used by logout.
	RevokeByHash(ctx context.Context, tokenHash string) error

	// RevokeByUserID marks every session of the user revoked. Used by
	// logout-all and by the defensive mass revocation after reuse detection.
	RevokeByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes sessions past their expiry. Periodic cleanup.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
