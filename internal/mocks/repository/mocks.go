// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"
	"time"

	"tasknest/internal/domain/entity"
	"tasknest/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()

	return args.Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	args := m.Called()

	return args.Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) TodoRepo() repository.TodoRepository {
	args := m.Called()

	return args.Get(0).(repository.TodoRepository)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if tokens, ok := args.Get(0).([]*entity.RefreshToken); ok {
		return tokens, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) MarkRotated(ctx context.Context, oldHash string, now time.Time) (*entity.RefreshToken, error) {
	args := m.Called(ctx, oldHash, now)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return args.Get(0).(int64), args.Error(1)
}

// MockTodoRepository mocks repository.TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	args := m.Called(ctx, todo)

	return args.Error(0)
}

func (m *MockTodoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	args := m.Called(ctx, id, ownerID)
	if todo, ok := args.Get(0).(*entity.Todo); ok {
		return todo, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTodoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	args := m.Called(ctx, ownerID)
	if todos, ok := args.Get(0).([]*entity.Todo); ok {
		return todos, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTodoRepository) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, updates repository.TodoFieldUpdates) (*entity.Todo, error) {
	args := m.Called(ctx, id, ownerID, updates)
	if todo, ok := args.Get(0).(*entity.Todo); ok {
		return todo, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)

	return args.Error(0)
}
