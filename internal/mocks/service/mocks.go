// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	"tasknest/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID uuid.UUID, kind service.TokenKind, ttl time.Duration) (string, error) {
	args := m.Called(userID, kind, ttl)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssuePair(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) Verify(tokenString string, expected service.TokenKind) (*service.Claims, error) {
	args := m.Called(tokenString, expected)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) HashToken(raw string) string {
	args := m.Called(raw)

	return args.String(0)
}

func (m *MockTokenService) RefreshTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
