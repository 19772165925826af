package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks the lifecycle of a refresh token.
type SessionStatus string

const (
	// SessionStatusActive marks a refresh token that can still mint new access tokens.
	SessionStatusActive SessionStatus = "active"
	// SessionStatusRotated marks a refresh token replaced by a newer one.
	// Presenting a rotated token again is a reuse signal.
	SessionStatusRotated SessionStatus = "rotated"
	// SessionStatusRevoked marks a refresh token invalidated by logout or
	// by the mass revocation that follows reuse detection.
	SessionStatusRevoked SessionStatus = "revoked"
)

// RefreshToken represents a long-lived, authorized user session.
// Only the SHA-256 hash of the raw token is ever persisted.
type RefreshToken struct {
	ID        uuid.UUID     // The unique ID for this session record.
	UserID    uuid.UUID     // Links this session to the User it belongs to.
	TokenHash string        // SHA-256 hash of the raw refresh token.
	Status    SessionStatus // Active, rotated, or revoked.
	ExpiresAt time.Time     // Hard ceiling after which the token is invalid regardless of status.
	CreatedAt time.Time     // When this session was created.
}

// IsActive reports whether the session can still be used to mint access tokens.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.Status == SessionStatusActive && t.ExpiresAt.After(now)
}
