package auth

import (
	"strings"
	"testing"
	"time"

	"tasknest/config"
	"tasknest/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		AccessSecret:  "test_access_secret_key_very_long_for_testing",
		RefreshSecret: "test_refresh_secret_key_very_long_for_testing",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndVerifyPair(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	accessToken, refreshToken, err := svc.IssuePair(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := svc.Verify(accessToken, service.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenKindAccess, accessClaims.Kind)

	refreshClaims, err := svc.Verify(refreshToken, service.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenKindRefresh, refreshClaims.Kind)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(t)

	// Issue a token already past its expiry, beyond the skew leeway.
	token, err := svc.Issue(uuid.New(), service.TokenKindAccess, -time.Minute)
	require.NoError(t, err)

	claims, err := svc.Verify(token, service.TokenKindAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_ExpiryLeewayTolerated(t *testing.T) {
	svc := newTestTokenService(t)

	// A token expired for less than the leeway still verifies.
	token, err := svc.Issue(uuid.New(), service.TokenKindAccess, -time.Second)
	require.NoError(t, err)

	_, err = svc.Verify(token, service.TokenKindAccess)
	assert.NoError(t, err)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(uuid.New(), service.TokenKindAccess, time.Hour)
	require.NoError(t, err)

	// Flip one byte in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, err := svc.Verify(tampered, service.TokenKindAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestTokenService(t)

	claims, err := svc.Verify("clearly-not-a-jwt-token", service.TokenKindAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_WrongKindRejected(t *testing.T) {
	cfg := &config.Config{}
	// Same secret for both kinds so the kind claim is the only discriminator.
	cfg.JWT = config.JWTConfig{
		AccessSecret:  "shared_secret_key_for_kind_check_testing",
		RefreshSecret: "shared_secret_key_for_kind_check_testing",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	refreshToken, err := svc.Issue(uuid.New(), service.TokenKindRefresh, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(refreshToken, service.TokenKindAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrWrongTokenKind)
}

func TestJWTService_RefreshTokenRejectedAsAccessWithDistinctSecrets(t *testing.T) {
	svc := newTestTokenService(t)

	_, refreshToken, err := svc.IssuePair(uuid.New())
	require.NoError(t, err)

	// Distinct secrets: the refresh token fails the access signature check.
	claims, err := svc.Verify(refreshToken, service.TokenKindAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_HashTokenStable(t *testing.T) {
	svc := newTestTokenService(t)

	h1 := svc.HashToken("some-refresh-token")
	h2 := svc.HashToken("some-refresh-token")
	h3 := svc.HashToken("another-refresh-token")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // hex SHA-256
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour}

	svc, err := NewJWTService(cfg)
	assert.Nil(t, svc)
	assert.Error(t, err)
}
