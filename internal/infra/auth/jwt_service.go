// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasknest/config"
	"tasknest/internal/domain/service"
	"tasknest/internal/errors"
)

// expiryLeeway absorbs small clock skew between the issuing and verifying host.
const expiryLeeway = 5 * time.Second

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// The signing secrets come from the process-wide configuration loaded once at
// startup; the service never mutates them.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return nil, errors.New("jwt token lifetimes must be positive")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.JWT.AccessSecret),
		refreshSecret: []byte(cfg.JWT.RefreshSecret),
		accessTTL:     cfg.JWT.AccessTTL,
		refreshTTL:    cfg.JWT.RefreshTTL,
	}, nil
}

// Issue produces a signed token of the given kind for the user.
func (s *jwtService) Issue(userID uuid.UUID, kind service.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"typ": string(kind),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretFor(kind))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// IssuePair mints an access/refresh pair with the configured TTLs.
func (s *jwtService) IssuePair(userID uuid.UUID) (string, string, error) {
	accessToken, err := s.Issue(userID, service.TokenKindAccess, s.accessTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.Issue(userID, service.TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify checks signature integrity first, then expiry, then kind.
func (s *jwtService) Verify(tokenString string, expected service.TokenKind) (*service.Claims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return s.secretFor(expected), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(expiryLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Expired tokens parse structurally; everything else counts as invalid.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, service.ErrInvalidToken
	}

	kind, _ := mapClaims["typ"].(string)
	if service.TokenKind(kind) != expected {
		return nil, service.ErrWrongTokenKind
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, service.ErrInvalidToken
	}

	claims := &service.Claims{
		UserID: userID,
		Kind:   service.TokenKind(kind),
	}
	if exp, expErr := mapClaims.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, iatErr := mapClaims.GetIssuedAt(); iatErr == nil && iat != nil {
		claims.IssuedAt = iat
	}

	return claims, nil
}

// HashToken returns the hex SHA-256 digest used to store refresh tokens.
func (s *jwtService) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) secretFor(kind service.TokenKind) []byte {
	if kind == service.TokenKindRefresh {
		return s.refreshSecret
	}

	return s.accessSecret
}
