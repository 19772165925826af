// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes the two session token flavors.
type TokenKind string

const (
	// TokenKindAccess is the short-lived token authorizing individual requests.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived credential used to mint new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// Verification errors. The delivery layer collapses all of them into one
// generic unauthorized response; only internal logs tell them apart.
var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("token is malformed or has an invalid signature")
	// ErrTokenExpired is returned when the expiry instant has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrWrongTokenKind is returned when a valid token of the wrong kind is presented.
	ErrWrongTokenKind = errors.New("token kind does not match expected kind")
)

// Claims defines the authenticated claims carried by every session token.
type Claims struct {
	UserID uuid.UUID
	Kind   TokenKind
	jwt.RegisteredClaims
}

// TokenService is the token codec: it signs and verifies the compact,
// URL-safe strings that bind an identity to an expiry instant.
type TokenService interface {
	// Issue produces a signed token of the given kind for the user.
	// Pure function over the signing keys held in configuration.
	Issue(userID uuid.UUID, kind TokenKind, ttl time.Duration) (string, error)

	// IssuePair mints an access/refresh pair with the configured TTLs.
	IssuePair(userID uuid.UUID) (accessToken, refreshToken string, err error)

	// Verify checks signature integrity first, then expiry, then kind.
	Verify(tokenString string, expected TokenKind) (*Claims, error)

	// HashToken returns the hex SHA-256 digest used to store refresh tokens.
	HashToken(raw string) string

	// RefreshTTL returns the configured refresh token lifetime.
	RefreshTTL() time.Duration
}
