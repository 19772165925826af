package impl

import (
	"context"
	"testing"
	"time"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	mockRepo "tasknest/internal/mocks/repository"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestSessionService(t *testing.T) (usecase.SessionUsecase, *mockRepo.MockRefreshTokenRepository) {
	t.Helper()

	refreshTokenRepo := &mockRepo.MockRefreshTokenRepository{}

	return NewSessionService(refreshTokenRepo, newDiscardLogger()), refreshTokenRepo
}

func TestSessionService_ListActiveSessions(t *testing.T) {
	svc, repo := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	expected := []*entity.RefreshToken{
		{ID: uuid.New(), UserID: userID, Status: entity.SessionStatusActive},
	}
	repo.On("FindActiveByUserID", ctx, userID).Return(expected, nil)

	sessions, err := svc.ListActiveSessions(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, sessions)
}

func TestSessionService_ListActiveSessions_RepoFailure(t *testing.T) {
	svc, repo := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("FindActiveByUserID", ctx, userID).Return(nil, errors.New("connection reset"))

	sessions, err := svc.ListActiveSessions(ctx, userID)

	assert.Nil(t, sessions)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.HTTPCode())
}

func TestSessionService_RevokeAllSessions(t *testing.T) {
	svc, repo := createTestSessionService(t)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("RevokeByUserID", ctx, userID).Return(nil)

	require.NoError(t, svc.RevokeAllSessions(ctx, userID))
	repo.AssertCalled(t, "RevokeByUserID", ctx, userID)
}

func TestSessionService_CleanupExpiredSessions(t *testing.T) {
	svc, repo := createTestSessionService(t)
	ctx := context.Background()

	repo.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			cutoff := args.Get(1).(time.Time)
			assert.WithinDuration(t, time.Now(), cutoff, time.Minute)
		}).
		Return(int64(3), nil)

	deleted, err := svc.CleanupExpiredSessions(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
